package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainUserKey = "main_user"

type VitalsRepo struct {
	db *sql.DB
}

func NewVitalsRepo(db *sql.DB) *VitalsRepo {
	return &VitalsRepo{db: db}
}

// Get returns the vitals row for key, or nil when scores were never
// initialized.
func (r *VitalsRepo) Get(ctx context.Context, key string) (*Vitals, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, discipline, mindset, strength, momentum, confidence, society
		FROM vitals WHERE key = ?
	`, key)

	var v Vitals
	if err := row.Scan(&v.Key, &v.Discipline, &v.Mindset, &v.Strength, &v.Momentum, &v.Confidence, &v.Society); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("vitals get: %w", err)
	}
	return &v, nil
}

func (r *VitalsRepo) Upsert(ctx context.Context, v *Vitals) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vitals (key, discipline, mindset, strength, momentum, confidence, society)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			discipline = excluded.discipline,
			mindset = excluded.mindset,
			strength = excluded.strength,
			momentum = excluded.momentum,
			confidence = excluded.confidence,
			society = excluded.society
	`, v.Key, v.Discipline, v.Mindset, v.Strength, v.Momentum, v.Confidence, v.Society)
	if err != nil {
		return fmt.Errorf("vitals upsert: %w", err)
	}
	return nil
}

func (r *VitalsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vitals WHERE key = ?`, key); err != nil {
		return fmt.Errorf("vitals delete: %w", err)
	}
	return nil
}
