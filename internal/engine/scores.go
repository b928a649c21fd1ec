package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// ScoreStore holds the five vital scores plus their mean ("society"). The
// in-memory copy is authoritative for the session; every mutation is flushed
// to disk before returning, and a failed flush is logged rather than
// propagated.
type ScoreStore struct {
	repo  *storage.VitalsRepo
	log   *zap.Logger
	cache *storage.Vitals
}

func NewScoreStore(ctx context.Context, repo *storage.VitalsRepo, log *zap.Logger) (*ScoreStore, error) {
	cache, err := repo.Get(ctx, storage.MainUserKey)
	if err != nil {
		return nil, fmt.Errorf("load vitals: %w", err)
	}
	return &ScoreStore{repo: repo, log: log, cache: cache}, nil
}

// Initialize seeds the scores once, at onboarding. Society is recomputed from
// the given components, each clamped to [0, 100].
func (s *ScoreStore) Initialize(ctx context.Context, init storage.Vitals) error {
	if s.cache != nil {
		return ErrAlreadyInitialized
	}
	v := applyDeltas(init, nil)
	v.Key = storage.MainUserKey
	s.cache = &v
	s.persist(ctx)
	return nil
}

// Get returns a copy of the current scores, or nil if never initialized.
func (s *ScoreStore) Get() *storage.Vitals {
	if s.cache == nil {
		return nil
	}
	v := *s.cache
	return &v
}

// IncrementOne adds delta to one component, clamps it and recomputes society
// in the same step.
func (s *ScoreStore) IncrementOne(ctx context.Context, vital Vital, delta float64) error {
	if !vital.IsValid() {
		return fmt.Errorf("invalid vital: %q", vital)
	}
	return s.IncrementMany(ctx, map[Vital]float64{vital: delta})
}

// IncrementMany applies a subset of deltas in one atomic step. Society is
// never observably stale.
func (s *ScoreStore) IncrementMany(ctx context.Context, deltas map[Vital]float64) error {
	if s.cache == nil {
		return ErrNotInitialized
	}
	for vital := range deltas {
		if !vital.IsValid() {
			return fmt.Errorf("invalid vital: %q", vital)
		}
	}
	next := applyDeltas(*s.cache, deltas)
	s.cache = &next
	s.persist(ctx)
	return nil
}

// Clear erases the score state entirely.
func (s *ScoreStore) Clear(ctx context.Context) {
	s.cache = nil
	if err := s.repo.Delete(ctx, storage.MainUserKey); err != nil {
		s.log.Error("vitals clear failed, memory cache remains authoritative", zap.Error(err))
	}
}

// restore wholesale-replaces the scores from a sync pull.
func (s *ScoreStore) restore(ctx context.Context, v *storage.Vitals) {
	if v == nil {
		s.Clear(ctx)
		return
	}
	next := *v
	next.Key = storage.MainUserKey
	s.cache = &next
	s.persist(ctx)
}

func (s *ScoreStore) persist(ctx context.Context) {
	if err := s.repo.Upsert(ctx, s.cache); err != nil {
		s.log.Error("vitals persist failed, memory cache remains authoritative", zap.Error(err))
	}
}
