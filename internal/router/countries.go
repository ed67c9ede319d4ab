package router

import (
	"net/http"

	"github.com/deppfellow/countries-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// readMethods are the methods every read route answers. HEAD runs the GET
// handler; net/http drops the body.
var readMethods = []string{http.MethodGet, http.MethodHead}

// registerCountryRoutes maps the country collection endpoints.
func registerCountryRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Countries
	base := ch.Handler

	r.Match(readMethods, "/countries", handler.Handle(base, ch.ListCountries, http.StatusOK, handler.NewRequest[handler.EmptyRequest]))
	r.POST("/countries", handler.Handle(base, ch.CreateCountry, http.StatusCreated, handler.NewRequest[handler.CreateCountryRequest]))

	r.Match(readMethods, "/country", handler.Handle(base, ch.GetFeaturedCountry, http.StatusOK, handler.NewRequest[handler.EmptyRequest]))

	countries := r.Group("/countries/:id")
	countries.Match(readMethods, "", handler.Handle(base, ch.GetCountry, http.StatusOK, handler.NewRequest[handler.CountryIDRequest]))
	countries.PUT("", handler.Handle(base, ch.ReplaceCountry, http.StatusOK, handler.NewRequest[handler.ReplaceCountryRequest]))
	countries.PATCH("", handler.Handle(base, ch.PatchCountry, http.StatusOK, handler.NewRequest[handler.PatchCountryRequest]))
	countries.DELETE("", handler.HandleNoContent(base, ch.DeleteCountry, http.StatusNoContent, handler.NewRequest[handler.CountryIDRequest]))
}
