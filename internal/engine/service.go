package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// Service owns one instance of every store plus the sync coordinator. It is
// constructed once at startup and threaded to consumers; there are no
// package-level singletons.
type Service struct {
	db  *sql.DB
	log *zap.Logger

	scores      *ScoreStore
	completions *CompletionStore
	checkins    *CheckinStore
	workouts    *WorkoutStore
	routine     *storage.RoutineRepo
	state       *storage.StateRepo
	sync        *SyncCoordinator

	now func() time.Time
}

func NewService(ctx context.Context, db *sql.DB, backend Backend, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	scores, err := NewScoreStore(ctx, storage.NewVitalsRepo(db), log)
	if err != nil {
		return nil, err
	}
	completions, err := NewCompletionStore(ctx, storage.NewCompletionRepo(db), log)
	if err != nil {
		return nil, err
	}
	checkins, err := NewCheckinStore(ctx, storage.NewCheckinRepo(db), log)
	if err != nil {
		return nil, err
	}
	workouts, err := NewWorkoutStore(ctx, storage.NewWorkoutRepo(db), log)
	if err != nil {
		return nil, err
	}
	state := storage.NewStateRepo(db)
	coordinator, err := NewSyncCoordinator(ctx, scores, completions, checkins, workouts, state, backend, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		db:          db,
		log:         log,
		scores:      scores,
		completions: completions,
		checkins:    checkins,
		workouts:    workouts,
		routine:     storage.NewRoutineRepo(db),
		state:       state,
		sync:        coordinator,
		now:         time.Now,
	}, nil
}

func (s *Service) Scores() *ScoreStore           { return s.scores }
func (s *Service) Completions() *CompletionStore { return s.completions }
func (s *Service) Checkins() *CheckinStore       { return s.checkins }
func (s *Service) Workouts() *WorkoutStore       { return s.workouts }
func (s *Service) Sync() *SyncCoordinator        { return s.sync }
func (s *Service) Routine() *storage.RoutineRepo { return s.routine }
func (s *Service) Logger() *zap.Logger           { return s.log }

// StartDate returns the chosen program start date, or nil before onboarding.
func (s *Service) StartDate(ctx context.Context) (*time.Time, error) {
	return s.state.GetTime(ctx, storage.StateKeyStartDate)
}

// SetStartDate records the program start date chosen at onboarding.
func (s *Service) SetStartDate(ctx context.Context, start time.Time) error {
	return s.state.SetTime(ctx, storage.StateKeyStartDate, startOfDay(start))
}

// ResolveItem records today's outcome for a routine item. A done outcome
// applies the item's impact weights to the vital scores in the same flow;
// skipping only records the outcome.
func (s *Service) ResolveItem(ctx context.Context, itemID string, status Status) error {
	item, err := s.routine.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("routine item %q not found", itemID)
	}
	if err := s.completions.SetStatus(ctx, DayKey(s.now()), itemID, status); err != nil {
		return err
	}
	if status != StatusDone {
		return nil
	}
	return s.scores.IncrementMany(ctx, itemImpact(item))
}

// UndoItem removes today's record for the item. Scores are not rolled back;
// increments are clamped and therefore not invertible.
func (s *Service) UndoItem(ctx context.Context, itemID string) {
	s.completions.RemoveStatus(ctx, DayKey(s.now()), itemID)
}

// DueItem pairs a routine item due today with its recorded outcome, if any.
type DueItem struct {
	Item   storage.RoutineItem
	Status Status
	Done   bool
}

// DueToday lists the active routine items whose cadence includes today,
// with today's recorded status.
func (s *Service) DueToday(ctx context.Context) ([]DueItem, error) {
	items, err := s.routine.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := DayKey(now)
	var out []DueItem
	for _, item := range items {
		if !item.Active {
			continue
		}
		cadence, err := ParseCadence(item.Cadence)
		if err != nil {
			s.log.Warn("routine item has invalid cadence", zap.String("item", item.ID), zap.Error(err))
			continue
		}
		if !cadence.DueOn(now.Weekday()) {
			continue
		}
		due := DueItem{Item: item}
		if status, ok := s.completions.GetStatus(today, item.ID); ok {
			due.Status = status
			due.Done = true
		}
		out = append(out, due)
	}
	return out, nil
}

// Stats replays the full history against the active routine.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.routine.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	start, err := s.StartDate(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(items, s.completions.cache, s.scores.Get(), start, s.now()), nil
}

// Engagement classifies the user's recent activity as of now.
func (s *Service) Engagement(now time.Time) Engagement {
	today := DayKey(now)
	activeToday := s.checkins.Has(today) || doneCount(s.completions.cache, today) > 0
	return ClassifyEngagement(now, currentStreak(s.completions.cache, now), activeToday, s.lastActivity())
}

// lastActivity is the newest check-in or done-completion timestamp, nil when
// nothing was ever recorded.
func (s *Service) lastActivity() *time.Time {
	var last *time.Time
	consider := func(t time.Time) {
		if last == nil || t.After(*last) {
			cp := t
			last = &cp
		}
	}
	for _, bucket := range s.completions.cache {
		for _, rec := range bucket {
			if Status(rec.Status) == StatusDone {
				consider(rec.OccurredAt)
			}
		}
	}
	for _, rec := range s.checkins.cache {
		consider(rec.OccurredAt)
	}
	return last
}
