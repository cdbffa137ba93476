package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are run in order on every open. Statements must be idempotent
// or tolerate re-running (see Migrate).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		organization TEXT NOT NULL,
		project TEXT NOT NULL,
		token TEXT NOT NULL DEFAULT '',
		area_path TEXT NOT NULL DEFAULT '',
		iteration TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS type_mappings (
		id TEXT PRIMARY KEY,
		alias TEXT NOT NULL UNIQUE,
		remote_type TEXT NOT NULL,
		default_fields TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS publish_log (
		id TEXT PRIMARY KEY,
		profile_name TEXT NOT NULL DEFAULT '',
		root_title TEXT NOT NULL,
		root_kind TEXT NOT NULL,
		node_count INTEGER NOT NULL DEFAULT 0,
		created_count INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL CHECK (outcome IN ('succeeded', 'failed')),
		error_text TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_publish_log_started_at ON publish_log(started_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_active ON profiles(active) WHERE active = 1`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
