package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-finder/internal/config"
	"location-finder/internal/types"
)

type mockGeocodingService struct {
	searchResults []types.LocationRecord
	geocodeResult *types.LocationRecord
	reverseResult *types.LocationRecord

	lastQuery string
	lastLat   float64
	lastLon   float64
	calls     int
}

func (m *mockGeocodingService) Search(_ context.Context, query string) []types.LocationRecord {
	m.calls++
	m.lastQuery = query
	if m.searchResults == nil {
		return []types.LocationRecord{}
	}
	return m.searchResults
}

func (m *mockGeocodingService) Geocode(_ context.Context, address string) *types.LocationRecord {
	m.calls++
	m.lastQuery = address
	return m.geocodeResult
}

func (m *mockGeocodingService) ReverseGeocode(_ context.Context, lat, lon float64) *types.LocationRecord {
	m.calls++
	m.lastLat, m.lastLon = lat, lon
	return m.reverseResult
}

type mockTimezoneService struct {
	zone string
	err  error
}

func (m mockTimezoneService) Lookup(types.Coords) (string, error) {
	return m.zone, m.err
}

func testApp(t *testing.T, svc *mockGeocodingService, tz *mockTimezoneService) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode, CORSOrigins: []string{"https://widget.example.org"}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if tz == nil {
		return NewAppWithServices(cfg, logger, svc, nil)
	}
	return NewAppWithServices(cfg, logger, svc, tz)
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func istanbul() types.LocationRecord {
	return types.LocationRecord{DisplayName: "İstanbul, Türkiye", Lat: 41.0082, Lon: 28.9784, Class: "place", Type: "city"}
}

func TestPing(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong","service":"location-finder","cache":"disabled"}`, rec.Body.String())
}

func TestPing_ReportsCacheDriver(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)
	app.cfg.Cache = config.CacheConfig{Enabled: true, Driver: config.CacheDriverRedis}

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "redis", decode(t, rec)["cache"])
}

func TestHandleSearch(t *testing.T) {
	svc := &mockGeocodingService{searchResults: []types.LocationRecord{istanbul()}}
	app := testApp(t, svc, nil)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/api/location-finder/search?query="+url.QueryEscape("istanbul"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "istanbul", body["query"])
	assert.Equal(t, float64(1), body["count"])
	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "İstanbul, Türkiye", results[0].(map[string]any)["display_name"])
	assert.Equal(t, "istanbul", svc.lastQuery)
}

func TestHandleSearch_EmptyResultsIsSuccess(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/api/location-finder/search?query=nowhere", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"query":"nowhere","results":[],"count":0}`, rec.Body.String())
}

func TestHandleSearch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"missing query", "/api/location-finder/search", "The query field is required."},
		{"too short", "/api/location-finder/search?query=ab", "The query field must be at least 3 characters."},
		{"too long", "/api/location-finder/search?query=" + strings.Repeat("a", 256), "The query field must not be greater than 255 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGeocodingService{}
			app := testApp(t, svc, nil)

			rec := serve(app, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Validation error", body["message"])
			errs := body["errors"].(map[string]any)
			assert.Equal(t, []any{tt.message}, errs["query"])
			assert.Zero(t, svc.calls, "service must not be called on invalid input")
		})
	}
}

func TestHandleGeocode(t *testing.T) {
	record := istanbul()
	svc := &mockGeocodingService{geocodeResult: &record}
	app := testApp(t, svc, nil)

	rec := serve(app, postJSON("/api/location-finder/geocode", `{"address":"Istanbul"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Istanbul", body["address"])
	result := body["result"].(map[string]any)
	assert.Equal(t, 41.0082, result["lat"])
	assert.Equal(t, 28.9784, result["lon"])
}

func TestHandleGeocode_FormBody(t *testing.T) {
	record := istanbul()
	svc := &mockGeocodingService{geocodeResult: &record}
	app := testApp(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/location-finder/geocode", strings.NewReader("address=Istanbul"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(app, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Istanbul", svc.lastQuery)
}

func TestHandleGeocode_NotFound(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	rec := serve(app, postJSON("/api/location-finder/geocode", `{"address":"Atlantis"}`))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Address not found","address":"Atlantis"}`, rec.Body.String())
}

func TestHandleGeocode_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing address", `{}`, "address"},
		{"empty address", `{"address":""}`, "address"},
		{"address too long", `{"address":"` + strings.Repeat("x", 256) + `"}`, "address"},
		{"malformed json", `{"address":`, "request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGeocodingService{}
			app := testApp(t, svc, nil)

			rec := serve(app, postJSON("/api/location-finder/geocode", tt.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decode(t, rec)
			assert.Contains(t, body["errors"].(map[string]any), tt.field)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestHandleReverseGeocode(t *testing.T) {
	record := istanbul()
	svc := &mockGeocodingService{reverseResult: &record}
	app := testApp(t, svc, &mockTimezoneService{zone: "Europe/Istanbul"})

	rec := serve(app, postJSON("/api/location-finder/reverse-geocode", `{"lat":41.0082,"lon":28.9784}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"lat": 41.0082, "lon": 28.9784}, body["coordinates"])
	assert.Equal(t, "Europe/Istanbul", body["timezone"])
	assert.Equal(t, 41.0082, svc.lastLat)
	assert.Equal(t, 28.9784, svc.lastLon)
}

func TestHandleReverseGeocode_ZeroCoordinatesAreValid(t *testing.T) {
	record := types.LocationRecord{DisplayName: "Null Island", Lat: 0, Lon: 0}
	svc := &mockGeocodingService{reverseResult: &record}
	app := testApp(t, svc, nil)

	rec := serve(app, postJSON("/api/location-finder/reverse-geocode", `{"lat":0,"lon":0}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.NotContains(t, body, "timezone")
	assert.Equal(t, 1, svc.calls)
}

func TestHandleReverseGeocode_TimezoneFailureIsIgnored(t *testing.T) {
	record := istanbul()
	app := testApp(t, &mockGeocodingService{reverseResult: &record}, &mockTimezoneService{err: errors.New("ocean")})

	rec := serve(app, postJSON("/api/location-finder/reverse-geocode", `{"lat":41.0082,"lon":28.9784}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decode(t, rec), "timezone")
}

func TestHandleReverseGeocode_NotFound(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	rec := serve(app, postJSON("/api/location-finder/reverse-geocode", `{"lat":12.5,"lon":-30.25}`))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"No address found for coordinates","coordinates":{"lat":12.5,"lon":-30.25}}`,
		rec.Body.String())
}

func TestHandleReverseGeocode_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing both", `{}`, []string{"lat", "lon"}},
		{"missing lon", `{"lat":10}`, []string{"lon"}},
		{"lat out of range", `{"lat":90.5,"lon":0}`, []string{"lat"}},
		{"lon out of range", `{"lat":0,"lon":-180.01}`, []string{"lon"}},
		{"non numeric", `{"lat":"north","lon":0}`, []string{"request"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGeocodingService{}
			app := testApp(t, svc, nil)

			rec := serve(app, postJSON("/api/location-finder/reverse-geocode", tt.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			errs := decode(t, rec)["errors"].(map[string]any)
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
			assert.Len(t, errs, len(tt.fields))
			assert.Zero(t, svc.calls)
		})
	}
}

func TestRecovery_ReturnsInternalServerError(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)
	app.router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/location-finder/search", nil)
	req.Header.Set("Origin", "https://widget.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(app, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://widget.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	app := testApp(t, &mockGeocodingService{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/location-finder/search", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(app, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
