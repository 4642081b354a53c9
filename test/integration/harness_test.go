//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	zoohttp "github.com/jsamuelsen/zoo-service/internal/adapters/http"
	"github.com/jsamuelsen/zoo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/platform/telemetry"
	"github.com/jsamuelsen/zoo-service/internal/ports"
)

// stack is a fully wired zood running in-process.
type stack struct {
	server  *httptest.Server
	service *app.ZooService
}

// newStack wires the same components as cmd/zood around an empty zoo.
func newStack(zooName string) (*stack, error) {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := app.NewZooService(app.ZooServiceConfig{Name: zooName, Logger: logger})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(svc); err != nil {
		return nil, err
	}

	promRegistry, err := telemetry.NewRegistry(telemetry.NewZooCollector(zooName, svc))
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	zoohttp.SetupRouter(engine, zoohttp.RouterConfig{
		Logger:         logger,
		ServiceName:    "zood-integration",
		RequestTimeout: 5 * time.Second,
		HealthHandler: handlers.NewHealthHandler(registry,
			handlers.NewBuildInfo("integration", "none", "now"),
			telemetry.MetricsHandler(promRegistry)),
		ZooHandler: handlers.NewZooHandler(svc),
	})

	return &stack{server: httptest.NewServer(engine), service: svc}, nil
}

func (s *stack) Close() {
	s.server.Close()
}
