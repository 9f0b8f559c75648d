// Package sqlite implements store.TaskStore with the gorm ORM over SQLite.
// It backs local development and self-contained tests; the schema is created
// with gorm's AutoMigrate.
package sqlite
