package store

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded migrations. A nil database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return &StoreError{Message: "set migration dialect", Cause: err}
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return &StoreError{Message: "apply migrations", Cause: err}
	}
	return nil
}
