package engine

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// BackupPayload is the combined store state shipped to the backup endpoint.
// The server treats it as opaque; only the timestamp is interpreted on the
// way back, for last-writer-wins.
type BackupPayload struct {
	Scores      *storage.Vitals                          `json:"scores"`
	Completions map[string]map[string]storage.Completion `json:"completions"`
	Checkins    map[string]storage.Checkin               `json:"checkins,omitempty"`
	Workouts    map[string]storage.Workout               `json:"workouts,omitempty"`
	Timestamp   time.Time                                `json:"timestamp"`
}

// PullResult is the remote backup plus the server's record of when it was
// written.
type PullResult struct {
	Payload      BackupPayload
	LastSyncedAt time.Time
}

// Backend is the remote backup store, consumed as two opaque calls. The HTTP
// implementation lives in internal/backend.
type Backend interface {
	PushBackup(ctx context.Context, payload BackupPayload) error
	PullBackup(ctx context.Context) (*PullResult, error)
}

// SyncCoordinator pushes the stores' combined state to the backend and, on
// startup, pulls the backend payload, applying it only if strictly newer than
// local. Push and pull share one busy flag: both mutate the same stores, so
// an overlapping call of either kind reports busy instead of racing.
//
// Network, parse and persistence failures never cross this boundary; they
// are logged and reported as false. Retry scheduling is the caller's job.
type SyncCoordinator struct {
	scores      *ScoreStore
	completions *CompletionStore
	checkins    *CheckinStore
	workouts    *WorkoutStore
	state       *storage.StateRepo
	backend     Backend
	log         *zap.Logger

	busy         atomic.Bool
	lastSyncedAt *time.Time

	now func() time.Time
}

func NewSyncCoordinator(
	ctx context.Context,
	scores *ScoreStore,
	completions *CompletionStore,
	checkins *CheckinStore,
	workouts *WorkoutStore,
	state *storage.StateRepo,
	backend Backend,
	log *zap.Logger,
) (*SyncCoordinator, error) {
	last, err := state.GetTime(ctx, storage.StateKeyLastSyncedAt)
	if err != nil {
		return nil, err
	}
	return &SyncCoordinator{
		scores:       scores,
		completions:  completions,
		checkins:     checkins,
		workouts:     workouts,
		state:        state,
		backend:      backend,
		log:          log,
		lastSyncedAt: last,
		now:          time.Now,
	}, nil
}

// LastSyncedAt returns a copy of the local sync watermark, or nil if never
// synced.
func (c *SyncCoordinator) LastSyncedAt() *time.Time {
	if c.lastSyncedAt == nil {
		return nil
	}
	t := *c.lastSyncedAt
	return &t
}

// Push uploads the combined store state. Returns false when a sync is
// already in flight, when there is nothing to sync yet, or when the backend
// call fails; local state is left unchanged on failure.
func (c *SyncCoordinator) Push(ctx context.Context) bool {
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug("push skipped, already syncing")
		return false
	}
	defer c.busy.Store(false)

	scores := c.scores.Get()
	if scores == nil {
		c.log.Info("push skipped, scores not initialized")
		return false
	}

	payload := BackupPayload{
		Scores:      scores,
		Completions: c.completions.All(),
		Checkins:    c.checkins.All(),
		Workouts:    c.workouts.All(),
		Timestamp:   c.now(),
	}
	if err := c.backend.PushBackup(ctx, payload); err != nil {
		c.log.Error("push failed", zap.Error(err))
		return false
	}

	c.setLastSyncedAt(ctx, payload.Timestamp)
	return true
}

// Pull fetches the remote backup and applies it only when strictly newer
// than the local watermark. A restore always replaces, never merges, local
// history.
func (c *SyncCoordinator) Pull(ctx context.Context) bool {
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug("pull skipped, already syncing")
		return false
	}
	defer c.busy.Store(false)

	res, err := c.backend.PullBackup(ctx)
	if err != nil {
		c.log.Error("pull failed", zap.Error(err))
		return false
	}
	if res == nil {
		c.log.Error("pull failed, empty result")
		return false
	}

	if c.lastSyncedAt != nil && !res.LastSyncedAt.After(*c.lastSyncedAt) {
		c.log.Info("pull ignored, local state is newer or equal",
			zap.Time("local", *c.lastSyncedAt),
			zap.Time("remote", res.LastSyncedAt))
		return true
	}

	c.scores.restore(ctx, res.Payload.Scores)
	c.completions.RestoreCache(ctx, res.Payload.Completions)
	c.checkins.RestoreCache(ctx, res.Payload.Checkins)
	c.workouts.RestoreCache(ctx, res.Payload.Workouts)
	c.setLastSyncedAt(ctx, res.LastSyncedAt)

	c.log.Info("restored from backup", zap.Time("remote", res.LastSyncedAt))
	return true
}

func (c *SyncCoordinator) setLastSyncedAt(ctx context.Context, t time.Time) {
	c.lastSyncedAt = &t
	if err := c.state.SetTime(ctx, storage.StateKeyLastSyncedAt, t); err != nil {
		c.log.Error("sync watermark persist failed, memory value remains authoritative", zap.Error(err))
	}
}
