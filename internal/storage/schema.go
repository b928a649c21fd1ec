package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vitals (
			key TEXT PRIMARY KEY,
			discipline REAL NOT NULL,
			mindset REAL NOT NULL,
			strength REAL NOT NULL,
			momentum REAL NOT NULL,
			confidence REAL NOT NULL,
			society REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS completions (
			date TEXT NOT NULL,
			item_id TEXT NOT NULL,
			status TEXT NOT NULL,
			occurred_at DATETIME NOT NULL,
			PRIMARY KEY (date, item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS checkins (
			date TEXT PRIMARY KEY,
			occurred_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			title TEXT NOT NULL,
			exercises TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS routine_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			cadence TEXT NOT NULL,
			active INTEGER DEFAULT 1,
			impact TEXT
		);`,
		// Single-row-per-key app state: start_date, last_synced_at.
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_date ON completions(date);`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
