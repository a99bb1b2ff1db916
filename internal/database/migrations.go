package database

import (
	"database/sql"
	"fmt"
	"log"
)

const createRunsTable = `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		target VARCHAR(2048) NOT NULL,
		username VARCHAR(255) NOT NULL,
		status VARCHAR(50) NOT NULL,
		failed_step INTEGER NOT NULL DEFAULT 0,
		failure_kind VARCHAR(50) NOT NULL DEFAULT '',
		failure_message TEXT NOT NULL DEFAULT '',
		item_name VARCHAR(255) NOT NULL DEFAULT '',
		checks JSONB NOT NULL DEFAULT '[]',
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Migrate creates the runs table on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createRunsTable); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}
