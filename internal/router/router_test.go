package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/countries-api/internal/config"
	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/handler"
	"github.com/deppfellow/countries-api/internal/repository"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/deppfellow/countries-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *echo.Echo
	repos  *repository.Repositories
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	repos, err := repository.NewRepositories(s)
	require.NoError(t, err)

	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	return &testApp{
		router: NewRouter(s, handler.NewHandlers(s, services)),
		repos:  repos,
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeCountry(t *testing.T, rec *httptest.ResponseRecorder) domain.Country {
	t.Helper()
	var c domain.Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func decodeCountries(t *testing.T, rec *httptest.ResponseRecorder) []domain.Country {
	t.Helper()
	var cs []domain.Country
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cs))
	return cs
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListCountries(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Equal(t, domain.DefaultCountries(), decodeCountries(t, rec))
}

func TestCreateCountry_SeedPlusGermany(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodPost, "/countries", `{"name":"Germany","capital":"Berlin","area":357022}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.Country{ID: 4, Name: "Germany", Capital: "Berlin", Area: 357022}, decodeCountry(t, rec))

	rec = app.do(http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	countries := decodeCountries(t, rec)
	require.Len(t, countries, 4)
	assert.Equal(t, "Germany", countries[3].Name)
}

func TestCreateCountry_IDFollowsMax(t *testing.T) {
	app := newTestApp(t, nil)

	require.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/countries/2", "").Code)

	rec := app.do(http.MethodPost, "/countries", `{"name":"Peru","capital":"Lima","area":1285216}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, decodeCountry(t, rec).ID)
}

func TestCreateCountry_EmptyStore(t *testing.T) {
	app := newTestApp(t, nil)
	for _, id := range []string{"1", "2", "3"} {
		require.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/countries/"+id, "").Code)
	}

	rec := app.do(http.MethodPost, "/countries", `{"name":"Peru","capital":"Lima","area":1285216}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decodeCountry(t, rec).ID)
}

func TestGetCountry(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/countries/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Country{ID: 3, Name: "Egypt", Capital: "Cairo", Area: 1010408}, decodeCountry(t, rec))

	rec = app.do(http.MethodGet, "/countries/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeError(t, rec)
	assert.EqualValues(t, 404, body["code"])
	assert.Equal(t, "Not Found", body["message"])
	assert.NotEmpty(t, body["description"])
}

func TestGetFeaturedCountry(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/country", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Australia", decodeCountry(t, rec).Name)

	require.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/countries/2", "").Code)
	require.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/countries/3", "").Code)

	rec = app.do(http.MethodGet, "/country", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "list index out of range"}, decodeError(t, rec))
}

func TestReplaceCountry(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodPut, "/countries/1", `{"name":"Siam","capital":"Bangkok","area":513115}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Country{ID: 1, Name: "Siam", Capital: "Bangkok", Area: 513115}, decodeCountry(t, rec))

	rec = app.do(http.MethodGet, "/countries/1", "")
	assert.Equal(t, "Siam", decodeCountry(t, rec).Name)
}

func TestPatchCountry(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodPatch, "/countries/2", `{"capital":"Sydney"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Country{ID: 2, Name: "Australia", Capital: "Sydney", Area: 7617930}, decodeCountry(t, rec))

	rec = app.do(http.MethodPatch, "/countries/2", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sydney", decodeCountry(t, rec).Capital)
}

func TestDeleteCountry(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodDelete, "/countries/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(http.MethodGet, "/countries", "")
	countries := decodeCountries(t, rec)
	require.Len(t, countries, 2)
	assert.Equal(t, 2, countries[0].ID)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/countries/1", "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/countries/1", "").Code)
}

func TestWriteErrors(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"post missing attribute", http.MethodPost, "/countries", `{"name":"Germany","capital":"Berlin"}`, http.StatusBadRequest},
		{"post unknown attribute", http.MethodPost, "/countries", `{"name":"Germany","capital":"Berlin","population":83}`, http.StatusUnprocessableEntity},
		{"post client id", http.MethodPost, "/countries", `{"id":9,"name":"Germany","capital":"Berlin","area":1}`, http.StatusUnprocessableEntity},
		{"post wrong type", http.MethodPost, "/countries", `{"name":"Germany","capital":"Berlin","area":"big"}`, http.StatusBadRequest},
		{"post null", http.MethodPost, "/countries", `{"name":"Germany","capital":null,"area":1}`, http.StatusBadRequest},
		{"post not an object", http.MethodPost, "/countries", `["Germany"]`, http.StatusUnsupportedMediaType},
		{"put fewer attributes", http.MethodPut, "/countries/1", `{"name":"Siam","capital":"Bangkok"}`, http.StatusBadRequest},
		{"put unknown attribute", http.MethodPut, "/countries/1", `{"name":"Siam","capital":"Bangkok","flag":"x"}`, http.StatusUnprocessableEntity},
		{"put absent id", http.MethodPut, "/countries/42", `{"name":"Siam","capital":"Bangkok","area":1}`, http.StatusNotFound},
		{"patch unknown attribute", http.MethodPatch, "/countries/1", `{"name":"Siam","population":70}`, http.StatusUnprocessableEntity},
		{"patch too many attributes", http.MethodPatch, "/countries/1", `{"name":"a","capital":"b","area":1,"x":2}`, http.StatusUnprocessableEntity},
		{"patch absent id", http.MethodPatch, "/countries/42", `{"name":"Siam"}`, http.StatusNotFound},
		{"patch unknown attribute on absent id", http.MethodPatch, "/countries/42", `{"population":70}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, nil)

			rec := app.do(tc.method, tc.path, tc.body)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			body := decodeError(t, rec)
			assert.EqualValues(t, tc.wantStatus, body["code"])
			assert.Equal(t, http.StatusText(tc.wantStatus), body["message"])

			count, err := app.repos.Countries.Count(t.Context())
			require.NoError(t, err)
			assert.Equal(t, 3, count, "a rejected write must not change the store")
		})
	}
}

func TestUnsupportedMediaType(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/countries", strings.NewReader(`{"name":"Germany","capital":"Berlin","area":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.EqualValues(t, 415, decodeError(t, rec)["code"])

	req = httptest.NewRequest(http.MethodPatch, "/countries/1", nil)
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestNonIntegerID(t *testing.T) {
	app := newTestApp(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := app.do(method, "/countries/abc", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeError(t, rec)["error"], `invalid country id "abc"`)
	}

	// Body checks come before the id is parsed.
	rec := app.do(http.MethodPut, "/countries/abc", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterErrors(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeError(t, rec)["message"])

	rec = app.do(http.MethodDelete, "/countries", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decodeError(t, rec)
	assert.EqualValues(t, 405, body["code"])
	assert.Equal(t, "Method Not Allowed", body["message"])
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/countries", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"countries":3`)

	rec = app.do(http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")

	rec = app.do(http.MethodGet, "/docs/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi"`)
}

func TestRateLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 2

	app := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/countries", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/countries", "").Code)

	rec := app.do(http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too Many Requests", decodeError(t, rec)["message"])
}

func TestHeadOnReadRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	testCases := []struct {
		path       string
		wantStatus int
	}{
		{"/countries", http.StatusOK},
		{"/country", http.StatusOK},
		{"/countries/1", http.StatusOK},
		{"/countries/99", http.StatusNotFound},
		{"/status", http.StatusOK},
		{"/docs", http.StatusOK},
		{"/docs/openapi.json", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rec := app.do(http.MethodHead, tc.path, "")
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
