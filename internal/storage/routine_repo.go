package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type RoutineRepo struct {
	db *sql.DB
}

func NewRoutineRepo(db *sql.DB) *RoutineRepo {
	return &RoutineRepo{db: db}
}

func (r *RoutineRepo) Upsert(ctx context.Context, item *RoutineItem) error {
	impact, err := json.Marshal(item.Impact)
	if err != nil {
		return fmt.Errorf("routine marshal impact: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO routine_items (id, title, category, cadence, active, impact)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			cadence = excluded.cadence,
			active = excluded.active,
			impact = excluded.impact
	`, item.ID, item.Title, item.Category, item.Cadence, boolToInt(item.Active), string(impact))
	if err != nil {
		return fmt.Errorf("routine upsert: %w", err)
	}
	return nil
}

func (r *RoutineRepo) Get(ctx context.Context, id string) (*RoutineItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, cadence, active, impact
		FROM routine_items WHERE id = ?
	`, id)
	item, err := scanRoutineItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("routine get: %w", err)
	}
	return item, nil
}

func (r *RoutineRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE routine_items SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("routine set active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("routine rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RoutineRepo) ListAll(ctx context.Context) ([]RoutineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, cadence, active, impact
		FROM routine_items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("routine list: %w", err)
	}
	defer rows.Close()

	var out []RoutineItem
	for rows.Next() {
		item, err := scanRoutineItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("routine scan: %w", err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routine rows: %w", err)
	}
	return out, nil
}

func scanRoutineItem(scan func(dest ...any) error) (*RoutineItem, error) {
	var item RoutineItem
	var active int
	var impact sql.NullString
	if err := scan(&item.ID, &item.Title, &item.Category, &item.Cadence, &active, &impact); err != nil {
		return nil, err
	}
	item.Active = active != 0
	if impact.Valid && impact.String != "" {
		if err := json.Unmarshal([]byte(impact.String), &item.Impact); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
