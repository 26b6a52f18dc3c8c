package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/synclab/metasync/database"
)

const (
	selectDocumentSQL = `SELECT value FROM documents WHERE namespace = $1 AND key = $2`
	upsertDocumentSQL = `INSERT INTO documents (namespace, key, value, updated_at) VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteDocumentSQL = `DELETE FROM documents WHERE namespace = $1 AND key = $2`
	listDocumentsSQL  = `SELECT value FROM documents WHERE namespace = $1 AND key <> $2 ORDER BY key`
)

type sqlBackend struct {
	db *sql.DB
}

// NewSQLStore creates a DocumentStore on an open database whose schema is already applied
func NewSQLStore(db *sql.DB) DocumentStore {
	return newDocumentStore(&sqlBackend{db: db})
}

// OpenDatabaseStore connects to PostgreSQL, applies the schema and returns a DocumentStore
func OpenDatabaseStore(ctx context.Context, connString string) (DocumentStore, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLStore(db), nil
}

func (s *sqlBackend) get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectDocumentSQL, namespace, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *sqlBackend) put(ctx context.Context, namespace, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, upsertDocumentSQL, namespace, key, data)
	return err
}

func (s *sqlBackend) remove(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx, deleteDocumentSQL, namespace, key)
	return err
}

func (s *sqlBackend) list(ctx context.Context, namespace string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, listDocumentsSQL, namespace, objectKey)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (s *sqlBackend) close() error {
	return s.db.Close()
}
