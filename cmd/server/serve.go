package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-service/internal/adapters/store/guard"
	"github.com/jsamuelsen11/todo-service/internal/app"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/health"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	storeName             = "todo-store"
)

func runServe(ctx context.Context, flags *globalFlags) error {
	// Bootstrap: config, logger, telemetry.
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	otel, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := otel.Shutdown(otelCtx); err != nil {
			logger.Error("telemetry shutdown error", logging.Err(err))
		}
	}()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(ctx, injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph, opening the store).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	store := do.MustInvoke[*guard.Store](injector)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("store close error", logging.Err(err))
		}
	}()

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(store)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal", slog.Any("cause", context.Cause(ctx)))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests before the store closes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", logging.Err(err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	logger.Info("shutdown complete")
	return nil
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.TodoDatabase, error) {
		db, err := openDatabase(ctx, cfg.Store, logger)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		if cfg.Store.AutoMigrate {
			if err := migrateUp(ctx, db, logger); err != nil {
				return nil, errors.Join(err, db.Close())
			}
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (*guard.Store, error) {
		db := do.MustInvoke[ports.TodoDatabase](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return guard.New(db, storeName, guard.Settings{
			MaxFailures:   cfg.Store.Breaker.MaxFailures,
			Timeout:       cfg.Store.Breaker.Timeout,
			HalfOpenLimit: cfg.Store.Breaker.HalfOpenLimit,
		}, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		store := do.MustInvoke[*guard.Store](i)
		return app.NewTodoService(store, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		svc := do.MustInvoke[ports.TodoService](i)
		return handlers.NewTodoHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(todoH, healthH, cfg.CORS.AllowedOrigins,
			middleware.Stack(middleware.StackOptions{
				Logger:            logger,
				Metrics:           metrics,
				RequestTimeout:    cfg.Server.RequestTimeout,
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				Burst:             cfg.RateLimit.Burst,
			})...,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
