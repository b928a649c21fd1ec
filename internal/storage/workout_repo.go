package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type WorkoutRepo struct {
	db *sql.DB
}

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo {
	return &WorkoutRepo{db: db}
}

func (r *WorkoutRepo) Upsert(ctx context.Context, w *Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("workout marshal exercises: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workouts (id, date, title, exercises, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			title = excluded.title,
			exercises = excluded.exercises,
			notes = excluded.notes
	`, w.ID, w.Date, w.Title, string(exercises), w.Notes, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("workout upsert: %w", err)
	}
	return nil
}

func (r *WorkoutRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("workout delete: %w", err)
	}
	return nil
}

func (r *WorkoutRepo) ListAll(ctx context.Context) ([]Workout, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, title, exercises, notes, created_at
		FROM workouts
		ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("workout list: %w", err)
	}
	defer rows.Close()

	var out []Workout
	for rows.Next() {
		var w Workout
		var exercises sql.NullString
		var notes sql.NullString
		if err := rows.Scan(&w.ID, &w.Date, &w.Title, &exercises, &notes, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("workout scan: %w", err)
		}
		if exercises.Valid && exercises.String != "" {
			if err := json.Unmarshal([]byte(exercises.String), &w.Exercises); err != nil {
				return nil, fmt.Errorf("workout unmarshal exercises: %w", err)
			}
		}
		w.Notes = notes.String
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workout rows: %w", err)
	}
	return out, nil
}

// ReplaceAll wholesale-replaces the workouts table. Sync restore path only.
func (r *WorkoutRepo) ReplaceAll(ctx context.Context, all []Workout) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM workouts`); err != nil {
			return fmt.Errorf("workout clear: %w", err)
		}
		for i := range all {
			w := &all[i]
			exercises, err := json.Marshal(w.Exercises)
			if err != nil {
				return fmt.Errorf("workout marshal exercises: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO workouts (id, date, title, exercises, notes, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, w.ID, w.Date, w.Title, string(exercises), w.Notes, w.CreatedAt); err != nil {
				return fmt.Errorf("workout restore insert: %w", err)
			}
		}
		return nil
	})
}
