package router

import (
	"github.com/deppfellow/countries-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the country API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.Match(readMethods, "/status", h.Health.CheckHealth)

	docs := r.Group("/docs")
	docs.Match(readMethods, "", h.OpenAPI.ServeOpenAPIUI)
	docs.Match(readMethods, "/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
