package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/countries-api/internal/middleware"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/labstack/echo/v4"
)

// CountryCounter is what the store health check needs from the service layer.
type CountryCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler exposes GET /status so load balancers and uptime monitors
// can check the service is alive and its store answers.
type HealthHandler struct {
	Handler
	countries CountryCounter
}

func NewHealthHandler(s *server.Server, countries CountryCounter) *HealthHandler {
	return &HealthHandler{
		Handler:   NewHandler(s),
		countries: countries,
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// ---------------- Store check --------------------------------------------
	if obs.HealthCheckEnabled("store") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		storeStart := time.Now()
		count, err := h.countries.Count(ctx)
		if err == nil {
			err = ctx.Err()
		}

		if err != nil {
			checks["store"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(storeStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       "store",
				"error_type":       "store_unhealthy",
				"response_time_ms": time.Since(storeStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["store"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(storeStart).String(),
				"countries":     count,
			}

			logger.Debug().
				Dur("response_time", time.Since(storeStart)).
				Int("countries", count).
				Msg("store health check passed")
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":    "response",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthCheckError sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
