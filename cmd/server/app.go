package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trilhaapi/tarefa-api/internal/api/middleware"
	"github.com/trilhaapi/tarefa-api/internal/config"
	"github.com/trilhaapi/tarefa-api/internal/platform/rediscache"
	"github.com/trilhaapi/tarefa-api/internal/service"
	"github.com/trilhaapi/tarefa-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService

	responseCache *middleware.ResponseCache

	// closers release connections in reverse order of creation.
	closers []func() error
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	taskStore, closeStore, err := setupTaskStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up task store: %w", err)
	}
	app.taskStore = taskStore
	app.closers = append(app.closers, closeStore)

	app.taskService, err = service.NewTaskService(taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.responseCache = middleware.NewResponseCache(app.setupCacheBackend(ctx), cfg.Cache.TTL, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupCacheBackend connects to Redis when configured. Failing to connect
// leaves the server without a response cache rather than failing startup.
func (app *application) setupCacheBackend(ctx context.Context) middleware.CacheBackend {
	cfg := app.config.Cache
	if cfg.RedisAddr == "" {
		app.logger.Info("Response cache backend disabled, only Cache-Control headers are sent")
		return nil
	}

	cache, err := rediscache.Open(ctx, rediscache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   cfg.Prefix,
		TTL:      cfg.TTL,
	}, app.logger)
	if err != nil {
		app.logger.Warn("Redis unavailable, continuing without response cache",
			slog.String("error", err.Error()))
		return nil
	}

	app.closers = append(app.closers, cache.Close)
	app.logger.Info("Response cache backend initialized", slog.Duration("ttl", cfg.TTL))
	return cache
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("Error closing resource", slog.String("error", err.Error()))
		}
	}
	app.closers = nil

	app.logger.Info("Application shutdown completed")
}
