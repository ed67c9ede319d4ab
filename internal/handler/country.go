package handler

import (
	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/deppfellow/countries-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CountryHandler serves the country collection endpoints.
//
// Each method is a typed HandlerFunc; routes wrap them with Handle or
// HandleNoContent.
type CountryHandler struct {
	Handler
	countryService *service.CountryService
}

func NewCountryHandler(s *server.Server, countryService *service.CountryService) *CountryHandler {
	return &CountryHandler{
		Handler:        NewHandler(s),
		countryService: countryService,
	}
}

// ListCountries returns every country in store order.
func (h *CountryHandler) ListCountries(c echo.Context, req *EmptyRequest) ([]domain.Country, error) {
	return h.countryService.List(c.Request().Context())
}

// GetFeaturedCountry returns the second stored country.
func (h *CountryHandler) GetFeaturedCountry(c echo.Context, req *EmptyRequest) (domain.Country, error) {
	return h.countryService.Featured(c.Request().Context())
}

func (h *CountryHandler) GetCountry(c echo.Context, req *CountryIDRequest) (domain.Country, error) {
	id, err := req.ID()
	if err != nil {
		return domain.Country{}, err
	}
	return h.countryService.Get(c.Request().Context(), id)
}

func (h *CountryHandler) CreateCountry(c echo.Context, req *CreateCountryRequest) (domain.Country, error) {
	return h.countryService.Create(c.Request().Context(), req.Fields)
}

func (h *CountryHandler) ReplaceCountry(c echo.Context, req *ReplaceCountryRequest) (domain.Country, error) {
	id, err := req.ID()
	if err != nil {
		return domain.Country{}, err
	}
	return h.countryService.Update(c.Request().Context(), id, req.Fields)
}

func (h *CountryHandler) PatchCountry(c echo.Context, req *PatchCountryRequest) (domain.Country, error) {
	id, err := req.ID()
	if err != nil {
		return domain.Country{}, err
	}
	return h.countryService.Update(c.Request().Context(), id, req.Fields)
}

func (h *CountryHandler) DeleteCountry(c echo.Context, req *CountryIDRequest) error {
	id, err := req.ID()
	if err != nil {
		return err
	}
	return h.countryService.Delete(c.Request().Context(), id)
}
