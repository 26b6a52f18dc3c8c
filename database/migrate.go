// Package database holds the schema of the document store database and applies it.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed migrations/000001_documents.up.sql
var initMigrationUp string

//go:embed migrations/000001_documents.down.sql
var initMigrationDown string

// MigrateUp creates the document store schema. It is safe to run repeatedly.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, initMigrationUp); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// MigrateDown drops the document store schema
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, initMigrationDown); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}
