package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/zoo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/zoo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/zoo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/platform/config"
	"github.com/jsamuelsen/zoo-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            port,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  time.Second,
		MaxRequestSize:  1 << 20,
	}
}

func newTestRouter(t *testing.T, timeout time.Duration) (*gin.Engine, *gin.RouterGroup, *app.ZooService) {
	t.Helper()

	svc := app.NewZooService(app.ZooServiceConfig{Name: "Test Zoo", Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(svc))

	engine := gin.New()
	api := SetupRouter(engine, RouterConfig{
		Logger:         discardLogger(),
		ServiceName:    "zood-test",
		RequestTimeout: timeout,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc", "now"), nil),
		ZooHandler:     handlers.NewZooHandler(svc),
	})

	return engine, api, svc
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig(8080)
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Same(t, cfg, srv.Config())
	assert.Equal(t, 5*time.Second, srv.httpServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.httpServer.WriteTimeout)
	assert.Equal(t, 30*time.Second, srv.httpServer.IdleTimeout)
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		port         int
		expectedAddr string
	}{
		{name: "localhost", host: "localhost", port: 8080, expectedAddr: "localhost:8080"},
		{name: "all interfaces", host: "0.0.0.0", port: 3000, expectedAddr: "0.0.0.0:3000"},
		{name: "ipv6 loopback", host: "::1", port: 9000, expectedAddr: "[::1]:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig(tt.port)
			cfg.Host = tt.host

			assert.Equal(t, tt.expectedAddr, New(cfg, discardLogger()).Addr())
		})
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(0), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	errCh, err := srv.Start()
	require.NoError(t, err)

	addr := srv.Addr()
	assert.False(t, strings.HasSuffix(addr, ":0"), "bound address carries the real port")

	resp, err := http.Get("http://" + addr + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	_, ok := <-errCh
	assert.False(t, ok, "error channel should be closed")
}

func TestServerStart_AddressInUse(t *testing.T) {
	first := New(testServerConfig(0), discardLogger())

	_, err := first.Start()
	require.NoError(t, err)

	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	cfg := testServerConfig(0)
	second := New(cfg, discardLogger())
	second.httpServer.Addr = first.Addr()

	_, err = second.Start()
	require.Error(t, err)
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig(0)
	cfg.MaxRequestSize = 16

	srv := New(cfg, discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "under limit", body: "small", wantStatus: http.StatusOK},
		{name: "over limit", body: strings.Repeat("x", 64), wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSetupRouter_Routes(t *testing.T) {
	engine, _, _ := newTestRouter(t, 0)

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /api/v1/animals",
		"POST /api/v1/animals",
		"GET /api/v1/animals/:id",
		"DELETE /api/v1/animals/:id",
		"POST /api/v1/animals/:id/health-records",
		"POST /api/v1/animals/:id/health-records/:recordId/resolve",
		"PUT /api/v1/animals/:id/treatment",
		"GET /api/v1/enclosures",
		"POST /api/v1/enclosures",
		"POST /api/v1/enclosures/:id/animals",
		"DELETE /api/v1/enclosures/:id/animals/:animalId",
		"GET /api/v1/staff",
		"POST /api/v1/staff",
		"POST /api/v1/staff/:id/enclosures",
		"GET /api/v1/routine",
		"GET /api/v1/reports/species",
		"GET /api/v1/reports/enclosures",
		"GET /api/v1/reports/health",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}

func TestSetupRouter_EndToEnd(t *testing.T) {
	engine, _, svc := newTestRouter(t, 0)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"zoo"`)

	body, err := json.Marshal(map[string]any{"name": "Leo", "species": "Lion", "class": "mammal"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/animals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderRequestID, "req-42")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))
	assert.Equal(t, 1, svc.Stats().Animals)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/animals/not-a-uuid", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-43")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, dto.ErrorCodeBadRequest, errResp.Error.Code)
	assert.Equal(t, "req-43", errResp.TraceID)
}

func TestSetupRouter_Timeout(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		wantTimeout bool
	}{
		{name: "default applies", timeout: 0, wantTimeout: true},
		{name: "disabled", timeout: -1, wantTimeout: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, api, _ := newTestRouter(t, tt.timeout)

			var hasDeadline bool
			api.GET("/deadline", func(c *gin.Context) {
				_, hasDeadline = c.Request.Context().Deadline()
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deadline", nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantTimeout, hasDeadline)
		})
	}
}
