package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/doctor-portfolio-api/internal/config"
	"github.com/harentsoaR/doctor-portfolio-api/internal/handlers"
	"github.com/harentsoaR/doctor-portfolio-api/internal/metrics"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultEmail: "doctor@example.com",
		CORSOrigins:  []string{"*"},
		Database:     config.DatabaseConfig{Driver: config.DriverMemory, Name: "doctor_portfolio"},
	}
}

func testRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gw, closeStore, err := openStore(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(closeStore)

	m := metrics.New("test")
	h := handlers.NewHandler(metrics.InstrumentGateway(gw, m), nil, handlers.Options{
		DefaultEmail: cfg.DefaultEmail,
		Driver:       cfg.Database.Driver,
		DatabaseName: cfg.Database.Name,
	})
	return newRouter(cfg, h, m)
}

func send(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenStoreMemory(t *testing.T) {
	gw, closeStore, err := openStore(config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &store.MemoryGateway{}, gw)
}

func TestRouterScenario(t *testing.T) {
	r := testRouter(t, testConfig())

	w := send(r, http.MethodPost, "/api/appointments",
		`{"name":"Jane Doe","email":"jane@x.com","date":"2025-03-01","time":"10:00"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = send(r, http.MethodGet, "/api/appointments?email=jane@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		OK    bool             `json:"ok"`
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "pending", resp.Items[0]["status"])
}

func TestRouterCORS(t *testing.T) {
	r := testRouter(t, testConfig())
	w := send(r, http.MethodGet, "/", "", map[string]string{"Origin": "https://portfolio.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	cfg := testConfig()
	cfg.CORSOrigins = []string{"https://portfolio.example.com"}
	r = testRouter(t, cfg)
	w = send(r, http.MethodGet, "/", "", map[string]string{"Origin": "https://portfolio.example.com"})
	assert.Equal(t, "https://portfolio.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = send(r, http.MethodGet, "/", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterFromSpacedOrigins(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.DriverMemory)
	t.Setenv("CORS_ORIGINS", "https://a.com, https://b.com")
	cfg, _, err := config.Load()
	require.NoError(t, err)

	var r *gin.Engine
	require.NotPanics(t, func() { r = testRouter(t, cfg) })
	w := send(r, http.MethodGet, "/", "", map[string]string{"Origin": "https://b.com"})
	assert.Equal(t, "https://b.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMetrics(t *testing.T) {
	r := testRouter(t, testConfig())
	send(r, http.MethodGet, "/api/blogs", "", nil)

	w := send(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "test_http_requests_total")
	assert.Contains(t, body, `path="/api/blogs"`)
}

func TestRouterRateLimitsWrites(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	r := testRouter(t, cfg)

	body := `{"title":"t","content":"c"}`
	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/api/blogs", body, nil).Code)
	w := send(r, http.MethodPost, "/api/blogs", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "detail")

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/blogs", "", nil).Code)
}
