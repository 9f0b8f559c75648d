package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trilhaapi/tarefa-api/internal/config"
	"github.com/trilhaapi/tarefa-api/internal/platform/postgres"
	"github.com/trilhaapi/tarefa-api/internal/platform/sqlite"
)

// handleMigrations executes a migration command against the configured database.
// It's called from main() when the -migrate flag is set.
//
// PostgreSQL supports every goose command. SQLite schemas are managed by
// gorm's AutoMigrate, so only "up" is accepted there.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations",
		slog.String("command", command),
		slog.String("driver", cfg.Database.Driver))

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database connection", slog.String("error", err.Error()))
			}
		}()
		return postgres.Migrate(ctx, db, command, logger)

	case config.DriverSQLite:
		if command != postgres.MigrateUp {
			return fmt.Errorf("migration command %q is not supported for sqlite", command)
		}
		gdb, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer func() { _ = sqlDB.Close() }()
		}
		if err := sqlite.Migrate(gdb); err != nil {
			return err
		}
		logger.Info("SQLite schema is up to date", slog.String("path", cfg.Database.SQLitePath))
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
