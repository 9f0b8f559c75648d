package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/trilhaapi/tarefa-api/internal/config"
	"github.com/trilhaapi/tarefa-api/internal/platform/postgres"
	"github.com/trilhaapi/tarefa-api/internal/platform/sqlite"
	"github.com/trilhaapi/tarefa-api/internal/store"
)

const databasePingTimeout = 5 * time.Second

// setupAppDatabase establishes a connection to PostgreSQL and configures the connection pool.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, databasePingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", slog.String("driver", config.DriverPostgres))
	return db, nil
}

// setupTaskStore opens the configured database, applies the schema when
// auto_migrate is set, and returns the matching TaskStore together with a
// function that releases its connections.
func setupTaskStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, db, postgres.MigrateUp, logger); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		return postgres.NewPostgresTaskStore(postgres.Wrap(db), logger), db.Close, nil

	case config.DriverSQLite:
		gdb, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
		}
		if cfg.AutoMigrate {
			if err := sqlite.Migrate(gdb); err != nil {
				_ = sqlDB.Close()
				return nil, nil, err
			}
		}
		logger.Info("Database connection established",
			slog.String("driver", config.DriverSQLite),
			slog.String("path", cfg.SQLitePath))
		return sqlite.NewTaskStore(gdb, logger), sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
