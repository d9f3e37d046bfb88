package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the directions cache tables if they do not exist.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDirectionsCacheQuery := `
	CREATE TABLE IF NOT EXISTS directions_cache (
        cache_key TEXT PRIMARY KEY,
        body TEXT NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_directions_cache_fetched_at
    ON directions_cache(fetched_at);
	`

	statements := []string{
		createDirectionsCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
