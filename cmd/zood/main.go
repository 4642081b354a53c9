// Command zood serves a single zoo over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/zoo-service/internal/adapters/http"
	"github.com/jsamuelsen/zoo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/zoo-service/internal/adapters/roster"
	"github.com/jsamuelsen/zoo-service/internal/app"
	"github.com/jsamuelsen/zoo-service/internal/platform/config"
	"github.com/jsamuelsen/zoo-service/internal/platform/logging"
	"github.com/jsamuelsen/zoo-service/internal/platform/telemetry"
	"github.com/jsamuelsen/zoo-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting zood",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("zoo", cfg.Zoo.Name),
	)

	// Telemetry goes first so the service's instruments bind to the real
	// meter provider.
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		ZooName:      cfg.Zoo.Name,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	zooService := app.NewZooService(app.ZooServiceConfig{
		Name:   cfg.Zoo.Name,
		Logger: logger,
	})

	rosterSource := roster.NewFileSource(cfg.Zoo.RosterFile)

	seeded, err := zooService.Seed(ctx, rosterSource)
	if err != nil {
		return fmt.Errorf("seeding zoo: %w", err)
	}

	logger.Info("zoo ready",
		slog.String("roster_file", cfg.Zoo.RosterFile),
		slog.Int("enclosures", seeded.Enclosures),
		slog.Int("animals", seeded.Animals),
		slog.Int("staff", seeded.Staff),
	)

	healthRegistry := ports.NewHealthRegistry()

	for _, checker := range []ports.HealthChecker{zooService, rosterSource} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	promRegistry, err := telemetry.NewRegistry(telemetry.NewZooCollector(cfg.Zoo.Name, zooService))
	if err != nil {
		return fmt.Errorf("creating metrics registry: %w", err)
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, telemetry.MetricsHandler(promRegistry))
	zooHandler := handlers.NewZooHandler(zooService)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    cfg.App.Name,
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthHandler:  healthHandler,
		ZooHandler:     zooHandler,
	})

	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a signal arrives or the server fails, then
// drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
