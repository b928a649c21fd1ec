package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Keys in the app_state table.
const (
	StateKeyStartDate    = "start_date"
	StateKeyLastSyncedAt = "last_synced_at"
)

// StateRepo persists single process-wide values (program start date, last
// sync timestamp).
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Get returns the stored value, or "" when the key was never written.
func (r *StateRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("state get: %w", err)
	}
	return v, nil
}

func (r *StateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("state set: %w", err)
	}
	return nil
}

// GetTime returns the stored RFC3339 timestamp, or nil when absent.
func (r *StateRepo) GetTime(ctx context.Context, key string) (*time.Time, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, fmt.Errorf("state parse %s: %w", key, err)
	}
	return &t, nil
}

func (r *StateRepo) SetTime(ctx context.Context, key string, t time.Time) error {
	return r.Set(ctx, key, t.Format(time.RFC3339Nano))
}
