package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent; Migrate runs it on every start when auto-migrate
// is enabled.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS issues (
	id          UUID PRIMARY KEY,
	project_id  BIGINT NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
	seq         BIGSERIAL,
	issue_title TEXT NOT NULL,
	issue_text  TEXT NOT NULL,
	created_by  TEXT NOT NULL,
	assigned_to TEXT NOT NULL DEFAULT '',
	status_text TEXT NOT NULL DEFAULT '',
	open        BOOLEAN NOT NULL DEFAULT TRUE,
	created_on  TIMESTAMPTZ NOT NULL,
	updated_on  TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS issues_project_seq_idx ON issues (project_id, seq)`,
}

// Migrate creates the projects and issues tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
