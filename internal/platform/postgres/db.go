package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is the subset of *sqlx.DB and *sqlx.Tx used by the stores, so a store
// can run against either a pool or a transaction.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)

// pinger is implemented by *sqlx.DB but not by *sqlx.Tx.
type pinger interface {
	PingContext(ctx context.Context) error
}

// Wrap adapts an open *sql.DB created with the pgx stdlib driver for use by
// the stores.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "pgx")
}
