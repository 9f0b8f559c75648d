package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/trilhaapi/tarefa-api/internal/platform/postgres"
)

const connectTimeout = 5 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDBWithT opens a connection to the test database, applying migrations
// the first time it is called in a test binary. The test is skipped when no
// database URL is configured and fails when the database is unreachable.
// The connection is closed when the test completes.
func GetTestDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("Skipping database test: set DATABASE_URL to run it")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("%v", formatDBConnectionError(err, dbURL))
	}

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(context.Background(), db, postgres.MigrateUp, nil)
	})
	if migrateErr != nil {
		t.Fatalf("Failed to migrate test database: %v", migrateErr)
	}

	return postgres.Wrap(db)
}

// formatDBConnectionError adds a masked URL and a hint to a connection failure.
func formatDBConnectionError(err error, dbURL string) error {
	hint := "check that PostgreSQL is running and the URL is correct"
	if isCIEnvironment() {
		hint = "check the database service definition of the CI job"
	}
	return fmt.Errorf("database connection failed (url: %s): %w; %s", maskDatabaseURL(dbURL), err, hint)
}
