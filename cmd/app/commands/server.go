package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/lovelifenow/admin-api/internal/app"
	"github.com/lovelifenow/admin-api/internal/config"
	appHTTP "github.com/lovelifenow/admin-api/internal/http"
)

// RunServer starts the admin API with graceful shutdown support. It loads
// configuration, builds the DI container, and runs the Gin HTTP server plus
// the metrics server when enabled. Blocks until SIGINT/SIGTERM or a fatal
// server error, then shuts down within the shutdown timeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()

	// Refuse to start with an incomplete configuration. A misconfigured
	// dashboard backend fails on every request anyway, better to fail fast.
	if err := requireCompleteConfig(cfg, logger); err != nil {
		return err
	}

	logger.Info("starting server",
		slog.String("version", version),
		slog.String("environment", cfg.Environment),
	)

	defer closeContainer(container, logger)

	// Initializes the full dependency graph
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return shutdownServers(server, metricsServer, cfg, nil)
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		return shutdownServers(server, metricsServer, cfg, err)
	}
}

// requireCompleteConfig logs which required variables are missing and returns
// an error that deliberately does not name them. Variable names belong in the
// server logs, not in output that may reach a client or a shell history.
func requireCompleteConfig(cfg *config.Config, logger *slog.Logger) error {
	if missing := cfg.Validate(); len(missing) > 0 {
		logger.Error("configuration incomplete",
			slog.Any("missing_variables", missing),
		)
	}
	if err := cfg.RequireComplete(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// shutdownServers stops both servers within the configured shutdown window
// and joins any errors with the triggering cause.
func shutdownServers(
	server *appHTTP.Server,
	metricsServer *appHTTP.MetricsServer,
	cfg *config.Config,
	cause error,
) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
	defer cancel()

	var errs []error
	if cause != nil {
		errs = append(errs, cause)
	}

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
