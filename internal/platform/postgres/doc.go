// Package postgres provides the PostgreSQL implementation of the store.TaskStore
// interface. Queries run through sqlx on top of the pgx stdlib driver, driver
// errors are mapped onto the store sentinel errors, and the schema is managed by
// goose migrations embedded in the binary.
package postgres
