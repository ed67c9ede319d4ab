package handler

import (
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/deppfellow/countries-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives a single value.
type Handlers struct {
	Health    *HealthHandler  // Health serves GET /status.
	OpenAPI   *OpenAPIHandler // OpenAPI serves the API documentation.
	Countries *CountryHandler // Countries serves the country collection.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s, services.Countries),
		OpenAPI:   NewOpenAPIHandler(s),
		Countries: NewCountryHandler(s, services.Countries),
	}
}
