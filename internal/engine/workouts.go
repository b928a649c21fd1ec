package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// WorkoutStore keeps free-form workout sessions keyed by id. The store
// guarantees only id uniqueness; the record shape is otherwise opaque to the
// rest of the engine.
type WorkoutStore struct {
	repo  *storage.WorkoutRepo
	log   *zap.Logger
	cache map[string]storage.Workout

	now func() time.Time
}

func NewWorkoutStore(ctx context.Context, repo *storage.WorkoutRepo, log *zap.Logger) (*WorkoutStore, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	cache := make(map[string]storage.Workout, len(all))
	for _, w := range all {
		cache[w.ID] = w
	}
	return &WorkoutStore{repo: repo, log: log, cache: cache, now: time.Now}, nil
}

// Save stores a new session. A missing id is generated; CreatedAt is stamped
// when zero. Returns the session id.
func (s *WorkoutStore) Save(ctx context.Context, w storage.Workout) string {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.now()
	}
	s.cache[w.ID] = w
	s.persist(ctx, &w)
	return w.ID
}

// Update replaces an existing session. Fails with ErrWorkoutNotFound on an
// unknown id.
func (s *WorkoutStore) Update(ctx context.Context, w storage.Workout) error {
	prev, ok := s.cache[w.ID]
	if !ok {
		return fmt.Errorf("update workout %q: %w", w.ID, ErrWorkoutNotFound)
	}
	w.CreatedAt = prev.CreatedAt
	s.cache[w.ID] = w
	s.persist(ctx, &w)
	return nil
}

// Delete removes a session. Fails with ErrWorkoutNotFound on an unknown id.
func (s *WorkoutStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.cache[id]; !ok {
		return fmt.Errorf("delete workout %q: %w", id, ErrWorkoutNotFound)
	}
	delete(s.cache, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("workout delete failed, memory cache remains authoritative", zap.Error(err))
	}
	return nil
}

// Get returns a copy of the session, or nil when absent.
func (s *WorkoutStore) Get(id string) *storage.Workout {
	w, ok := s.cache[id]
	if !ok {
		return nil
	}
	cp := w
	return &cp
}

// ForDate returns the sessions logged on the date, newest first.
func (s *WorkoutStore) ForDate(date string) []storage.Workout {
	return s.ForRange(date, date)
}

// ForRange returns the sessions with from <= date <= to, sorted descending
// by date.
func (s *WorkoutStore) ForRange(from, to string) []storage.Workout {
	var out []storage.Workout
	for _, w := range s.cache {
		if w.Date >= from && w.Date <= to {
			out = append(out, w)
		}
	}
	sortWorkoutsDesc(out)
	return out
}

// ForMonth returns the sessions in the given month, sorted descending by
// date.
func (s *WorkoutStore) ForMonth(year int, month time.Month) []storage.Workout {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return s.ForRange(DayKey(first), DayKey(last))
}

// ExerciseNames returns the sorted set of distinct exercise names ever
// logged.
func (s *WorkoutStore) ExerciseNames() []string {
	seen := make(map[string]bool)
	for _, w := range s.cache {
		for _, name := range w.Exercises {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns a copy of every session, keyed by id. Sync/export only.
func (s *WorkoutStore) All() map[string]storage.Workout {
	out := make(map[string]storage.Workout, len(s.cache))
	for id, w := range s.cache {
		out[id] = w
	}
	return out
}

// RestoreCache wholesale-replaces the store from a sync pull.
func (s *WorkoutStore) RestoreCache(ctx context.Context, data map[string]storage.Workout) {
	cache := make(map[string]storage.Workout, len(data))
	var flat []storage.Workout
	for id, w := range data {
		w.ID = id
		cache[id] = w
		flat = append(flat, w)
	}
	s.cache = cache
	if err := s.repo.ReplaceAll(ctx, flat); err != nil {
		s.log.Error("workout restore persist failed, memory cache remains authoritative", zap.Error(err))
	}
}

func (s *WorkoutStore) persist(ctx context.Context, w *storage.Workout) {
	if err := s.repo.Upsert(ctx, w); err != nil {
		s.log.Error("workout persist failed, memory cache remains authoritative", zap.Error(err))
	}
}

func sortWorkoutsDesc(ws []storage.Workout) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Date != ws[j].Date {
			return ws[i].Date > ws[j].Date
		}
		return ws[i].CreatedAt.After(ws[j].CreatedAt)
	})
}
