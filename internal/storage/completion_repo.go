package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Upsert(ctx context.Context, c *Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (date, item_id, status, occurred_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, item_id) DO UPDATE SET
			status = excluded.status,
			occurred_at = excluded.occurred_at
	`, c.Date, c.ItemID, c.Status, c.OccurredAt)
	if err != nil {
		return fmt.Errorf("completion upsert: %w", err)
	}
	return nil
}

func (r *CompletionRepo) Delete(ctx context.Context, date, itemID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE date = ? AND item_id = ?`, date, itemID); err != nil {
		return fmt.Errorf("completion delete: %w", err)
	}
	return nil
}

func (r *CompletionRepo) ListAll(ctx context.Context) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, item_id, status, occurred_at
		FROM completions
		ORDER BY date, item_id
	`)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.Date, &c.ItemID, &c.Status, &c.OccurredAt); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// ReplaceAll wholesale-replaces the completions table. Used by the sync
// restore path only.
func (r *CompletionRepo) ReplaceAll(ctx context.Context, all []Completion) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM completions`); err != nil {
			return fmt.Errorf("completion clear: %w", err)
		}
		for i := range all {
			c := &all[i]
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO completions (date, item_id, status, occurred_at)
				VALUES (?, ?, ?, ?)
			`, c.Date, c.ItemID, c.Status, c.OccurredAt); err != nil {
				return fmt.Errorf("completion restore insert: %w", err)
			}
		}
		return nil
	})
}

func (r *CompletionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM completions`); err != nil {
		return fmt.Errorf("completion delete all: %w", err)
	}
	return nil
}
