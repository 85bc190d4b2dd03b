package database

import (
	"context"
	"fmt"
)

// Bootstrap creates the document storage schema if it does not exist.
func (db *DB) Bootstrap(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			id VARCHAR(64) NOT NULL,
			body JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS documents_body_idx
			ON documents USING GIN (body jsonb_path_ops)`,
	}

	for _, sql := range statements {
		if _, err := db.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	db.logger.Info("schema_ready", "Document storage schema is ready", "startup", nil)
	return nil
}
