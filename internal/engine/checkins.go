package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// CheckinStore keeps the set of dates the user checked in on. A check-in
// counts as activity for engagement classification even when no task was
// resolved that day.
type CheckinStore struct {
	repo  *storage.CheckinRepo
	log   *zap.Logger
	cache map[string]storage.Checkin

	now func() time.Time
}

func NewCheckinStore(ctx context.Context, repo *storage.CheckinRepo, log *zap.Logger) (*CheckinStore, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load checkins: %w", err)
	}
	cache := make(map[string]storage.Checkin, len(all))
	for _, c := range all {
		cache[c.Date] = c
	}
	return &CheckinStore{repo: repo, log: log, cache: cache, now: time.Now}, nil
}

// Mark records a check-in for the date. Re-checking the same day refreshes
// the timestamp.
func (s *CheckinStore) Mark(ctx context.Context, date string) {
	rec := storage.Checkin{Date: date, OccurredAt: s.now()}
	s.cache[date] = rec
	if err := s.repo.Upsert(ctx, &rec); err != nil {
		s.log.Error("checkin persist failed, memory cache remains authoritative", zap.Error(err))
	}
}

// MarkToday records a check-in for the current local date.
func (s *CheckinStore) MarkToday(ctx context.Context) {
	s.Mark(ctx, DayKey(s.now()))
}

// Has reports whether a check-in exists for the date.
func (s *CheckinStore) Has(date string) bool {
	_, ok := s.cache[date]
	return ok
}

// Get returns a copy of the check-in record, or nil when absent.
func (s *CheckinStore) Get(date string) *storage.Checkin {
	rec, ok := s.cache[date]
	if !ok {
		return nil
	}
	c := rec
	return &c
}

// All returns a copy of every check-in, keyed by date. Sync/export only.
func (s *CheckinStore) All() map[string]storage.Checkin {
	out := make(map[string]storage.Checkin, len(s.cache))
	for date, rec := range s.cache {
		out[date] = rec
	}
	return out
}

// RestoreCache wholesale-replaces the store from a sync pull.
func (s *CheckinStore) RestoreCache(ctx context.Context, data map[string]storage.Checkin) {
	cache := make(map[string]storage.Checkin, len(data))
	var flat []storage.Checkin
	for date, rec := range data {
		rec.Date = date
		cache[date] = rec
		flat = append(flat, rec)
	}
	s.cache = cache
	if err := s.repo.ReplaceAll(ctx, flat); err != nil {
		s.log.Error("checkin restore persist failed, memory cache remains authoritative", zap.Error(err))
	}
}
