// Package main implements the entry point for the Tarefa API server, an HTTP
// service for creating, querying, updating and deleting tasks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/trilhaapi/tarefa-api/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: ./config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	cfg, logger, err := initializeApp(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := handleMigrations(ctx, cfg, *migrateCmd, logger); err != nil {
			logger.Error("Migration failed", slog.String("command", *migrateCmd), slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("Application stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	logger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("redis_cache", cfg.Cache.RedisAddr != ""))

	return cfg, logger, nil
}
