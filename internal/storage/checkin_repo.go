package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CheckinRepo struct {
	db *sql.DB
}

func NewCheckinRepo(db *sql.DB) *CheckinRepo {
	return &CheckinRepo{db: db}
}

func (r *CheckinRepo) Upsert(ctx context.Context, c *Checkin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (date, occurred_at)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET occurred_at = excluded.occurred_at
	`, c.Date, c.OccurredAt)
	if err != nil {
		return fmt.Errorf("checkin upsert: %w", err)
	}
	return nil
}

func (r *CheckinRepo) ListAll(ctx context.Context) ([]Checkin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, occurred_at FROM checkins ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("checkin list: %w", err)
	}
	defer rows.Close()

	var out []Checkin
	for rows.Next() {
		var c Checkin
		if err := rows.Scan(&c.Date, &c.OccurredAt); err != nil {
			return nil, fmt.Errorf("checkin scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

// ReplaceAll wholesale-replaces the checkins table. Sync restore path only.
func (r *CheckinRepo) ReplaceAll(ctx context.Context, all []Checkin) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM checkins`); err != nil {
			return fmt.Errorf("checkin clear: %w", err)
		}
		for i := range all {
			c := &all[i]
			if _, err := tx.ExecContext(ctx, `INSERT INTO checkins (date, occurred_at) VALUES (?, ?)`, c.Date, c.OccurredAt); err != nil {
				return fmt.Errorf("checkin restore insert: %w", err)
			}
		}
		return nil
	})
}
