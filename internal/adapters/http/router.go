package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/zoo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/zoo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/zoo-service/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when RouterConfig.RequestTimeout is zero.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains everything SetupRouter wires onto the engine.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names the otelgin tracer and HTTP metrics.
	ServiceName string

	// RequestTimeout bounds each /api/v1 request. Negative disables it.
	RequestTimeout time.Duration

	HealthHandler *handlers.HealthHandler
	ZooHandler    *handlers.ZooHandler
}

// SetupRouter registers middleware and routes on engine.
//
// Middleware runs in this order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and HTTP metrics
//  5. Logging (skips /-/ routes)
//  6. Timeout (/api/v1 only)
//
// Probes and metrics live under /-/, the zoo API under /api/v1. The /api/v1
// group is returned.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) *gin.RouterGroup {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine.Group("/-"))
	}

	apiV1 := engine.Group("/api/v1")

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	if timeout > 0 {
		apiV1.Use(middleware.Timeout(timeout))
	}

	if cfg.ZooHandler != nil {
		cfg.ZooHandler.RegisterRoutes(apiV1)
	}

	return apiV1
}
