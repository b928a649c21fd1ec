package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// ChangeKind tags a completion store mutation.
type ChangeKind string

const (
	ChangeSet      ChangeKind = "set"
	ChangeRemoved  ChangeKind = "removed"
	ChangeRestored ChangeKind = "restored"
	ChangeCleared  ChangeKind = "cleared"
)

// ChangeEvent is delivered synchronously to subscribers after a mutation has
// been persisted. Date and ItemID are empty for restore/clear events.
type ChangeEvent struct {
	Kind   ChangeKind
	Date   string
	ItemID string
}

// DailyStats is the per-day aggregate of a date bucket.
type DailyStats struct {
	Done    int
	Skipped int
}

// CompletionStore keeps the date → routine item → completion record map. All
// calls originate from a single logical thread; no locking beyond that
// assumption. The in-memory map is authoritative, persistence failures are
// logged and swallowed.
type CompletionStore struct {
	repo  *storage.CompletionRepo
	log   *zap.Logger
	cache map[string]map[string]storage.Completion

	subs   map[int]func(ChangeEvent)
	nextID int

	now func() time.Time
}

func NewCompletionStore(ctx context.Context, repo *storage.CompletionRepo, log *zap.Logger) (*CompletionStore, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	cache := make(map[string]map[string]storage.Completion)
	for _, c := range all {
		bucket := cache[c.Date]
		if bucket == nil {
			bucket = make(map[string]storage.Completion)
			cache[c.Date] = bucket
		}
		bucket[c.ItemID] = c
	}
	return &CompletionStore{
		repo:  repo,
		log:   log,
		cache: cache,
		subs:  make(map[int]func(ChangeEvent)),
		now:   time.Now,
	}, nil
}

// SetStatus upserts the record for (date, itemID) with occurredAt = now,
// replacing any prior record for that key.
func (s *CompletionStore) SetStatus(ctx context.Context, date, itemID string, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %q", status)
	}
	rec := storage.Completion{
		Date:       date,
		ItemID:     itemID,
		Status:     string(status),
		OccurredAt: s.now(),
	}
	bucket := s.cache[date]
	if bucket == nil {
		bucket = make(map[string]storage.Completion)
		s.cache[date] = bucket
	}
	bucket[itemID] = rec
	if err := s.repo.Upsert(ctx, &rec); err != nil {
		s.log.Error("completion persist failed, memory cache remains authoritative", zap.Error(err))
	}
	s.notify(ChangeEvent{Kind: ChangeSet, Date: date, ItemID: itemID})
	return nil
}

// RemoveStatus deletes the record for (date, itemID) and prunes the date
// bucket if it becomes empty. Removing an absent key is a no-op.
func (s *CompletionStore) RemoveStatus(ctx context.Context, date, itemID string) {
	bucket, ok := s.cache[date]
	if !ok {
		return
	}
	if _, ok := bucket[itemID]; !ok {
		return
	}
	delete(bucket, itemID)
	if len(bucket) == 0 {
		delete(s.cache, date)
	}
	if err := s.repo.Delete(ctx, date, itemID); err != nil {
		s.log.Error("completion delete failed, memory cache remains authoritative", zap.Error(err))
	}
	s.notify(ChangeEvent{Kind: ChangeRemoved, Date: date, ItemID: itemID})
}

// GetStatus returns the stored status for the key, or false when absent.
func (s *CompletionStore) GetStatus(date, itemID string) (Status, bool) {
	rec, ok := s.cache[date][itemID]
	if !ok {
		return "", false
	}
	return Status(rec.Status), true
}

// GetRecord returns a copy of the full record, or nil when absent.
func (s *CompletionStore) GetRecord(date, itemID string) *storage.Completion {
	rec, ok := s.cache[date][itemID]
	if !ok {
		return nil
	}
	c := rec
	return &c
}

// CompletionsForDate returns a copy of the date's bucket.
func (s *CompletionStore) CompletionsForDate(date string) map[string]storage.Completion {
	out := make(map[string]storage.Completion, len(s.cache[date]))
	for id, rec := range s.cache[date] {
		out[id] = rec
	}
	return out
}

// GetDailyStats counts done and skipped records for the date.
func (s *CompletionStore) GetDailyStats(date string) DailyStats {
	var stats DailyStats
	for _, rec := range s.cache[date] {
		switch Status(rec.Status) {
		case StatusDone:
			stats.Done++
		case StatusSkipped:
			stats.Skipped++
		}
	}
	return stats
}

// All returns a deep copy of the full structure. Sync/export only.
func (s *CompletionStore) All() map[string]map[string]storage.Completion {
	out := make(map[string]map[string]storage.Completion, len(s.cache))
	for date, bucket := range s.cache {
		cp := make(map[string]storage.Completion, len(bucket))
		for id, rec := range bucket {
			cp[id] = rec
		}
		out[date] = cp
	}
	return out
}

// Subscribe registers a listener fired synchronously after every mutating
// call. The returned function unsubscribes it.
func (s *CompletionStore) Subscribe(fn func(ChangeEvent)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// RestoreCache wholesale-replaces the store from a sync pull and notifies
// subscribers once.
func (s *CompletionStore) RestoreCache(ctx context.Context, data map[string]map[string]storage.Completion) {
	cache := make(map[string]map[string]storage.Completion, len(data))
	var flat []storage.Completion
	for date, bucket := range data {
		if len(bucket) == 0 {
			continue
		}
		cp := make(map[string]storage.Completion, len(bucket))
		for id, rec := range bucket {
			rec.Date = date
			rec.ItemID = id
			cp[id] = rec
			flat = append(flat, rec)
		}
		cache[date] = cp
	}
	s.cache = cache
	if err := s.repo.ReplaceAll(ctx, flat); err != nil {
		s.log.Error("completion restore persist failed, memory cache remains authoritative", zap.Error(err))
	}
	s.notify(ChangeEvent{Kind: ChangeRestored})
}

// Clear erases all completion state.
func (s *CompletionStore) Clear(ctx context.Context) {
	s.cache = make(map[string]map[string]storage.Completion)
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.log.Error("completion clear failed, memory cache remains authoritative", zap.Error(err))
	}
	s.notify(ChangeEvent{Kind: ChangeCleared})
}

func (s *CompletionStore) notify(ev ChangeEvent) {
	for _, fn := range s.subs {
		fn(ev)
	}
}
