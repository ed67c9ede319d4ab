package middleware

import (
	"net/http"

	"github.com/deppfellow/countries-api/internal/errs"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// It keeps a pointer to the application container so the middleware can read
// config values (CORS origins, env) and the logger.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware writing one "API"
// line per request through zerolog, with the level chosen by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// When a handler returns an error the final status is only decided
			// by GlobalErrorHandler, so derive it from the error instead.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = StatusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
//
// The recovered panic is logged with its stack and handed to the global
// error handler, which renders it as a 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// StatusOf returns the HTTP status an error will be rendered with.
func StatusOf(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Aborts (*errs.HTTPError, or Echo's own 4xx errors such as unknown routes
// and disallowed methods) render as {code, message, description}. Anything
// else renders as {error} with status 500.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	if !errors.As(err, &httpErr) && errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		httpErr = fromEchoError(echoErr)
	}

	logger := *GetLogger(c)

	if httpErr == nil {
		logger.Error().Stack().
			Err(originalErr).
			Int("status", http.StatusInternalServerError).
			Msg("unhandled error")

		if !c.Response().Committed {
			if wErr := c.JSON(http.StatusInternalServerError, errs.NewInternalError(originalErr)); wErr != nil {
				logger.Error().Err(wErr).Msg("failed to write error response")
			}
		}
		return
	}

	event := logger.Warn()
	if len(httpErr.Errors) > 0 {
		event = event.Interface("field_errors", httpErr.Errors)
	}
	event.
		Err(originalErr).
		Int("status", httpErr.Code).
		Str("error_code", errs.MakeUpperCaseWithUnderscores(httpErr.Message)).
		Msg(httpErr.Description)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.Code)
	} else {
		err = c.JSON(httpErr.Code, httpErr)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}

// fromEchoError converts Echo's error into the API error shape.
func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	description := ""
	if msg, ok := echoErr.Message.(string); ok && msg != http.StatusText(echoErr.Code) {
		description = msg
	}
	return errs.New(echoErr.Code, description)
}
