package pinstore

import (
	"database/sql"
	"fmt"
)

// InitPostgresSchema creates the pins table if it does not exist.
func InitPostgresSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS pins (
		pin_id      TEXT PRIMARY KEY,
		lat         DOUBLE PRECISION NOT NULL,
		lon         DOUBLE PRECISION NOT NULL,
		severity    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		reported_by TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init postgres schema: create pins table: %w", err)
	}

	return nil
}

// InitSqliteSchema creates the pins table if it does not exist.
// Timestamps are stored as RFC 3339 text.
func InitSqliteSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS pins (
		pin_id      TEXT PRIMARY KEY,
		lat         REAL NOT NULL,
		lon         REAL NOT NULL,
		severity    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		reported_by TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init sqlite schema: create pins table: %w", err)
	}

	return nil
}
