package database

import (
	"context"
	"fmt"
	"log"
)

// Projects are stored whole as JSONB; the scalar columns exist for listing
// and indexing only.
const projectsTable = `
CREATE TABLE IF NOT EXISTS mvi_projects (
	id VARCHAR(64) PRIMARY KEY,
	user_id TEXT NOT NULL,
	current_step VARCHAR(50) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'analyzing',
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
ALTER TABLE mvi_projects ALTER COLUMN user_id TYPE TEXT;
CREATE INDEX IF NOT EXISTS idx_mvi_projects_user ON mvi_projects(user_id);
CREATE INDEX IF NOT EXISTS idx_mvi_projects_updated ON mvi_projects(updated_at DESC);
`

// CreateTables creates all necessary database tables
func (db *DB) CreateTables(ctx context.Context) error {
	log.Println("Creating database tables...")

	if _, err := db.Pool.Exec(ctx, projectsTable); err != nil {
		return fmt.Errorf("failed to create mvi_projects: %w", err)
	}

	log.Println("✅ All tables created successfully")
	return nil
}
