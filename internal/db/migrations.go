package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: index filled_at so the retention prune that runs before
	// every availability list read stays a cheap scan.
	`CREATE INDEX IF NOT EXISTS idx_availabilities_filled_at
	     ON availabilities(filled_at) WHERE filled_at IS NOT NULL`,
}

// Migrate creates the schema and runs the database migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
