package storage

import "time"

// Vitals is the single persisted score record. Society is always the mean of
// the other five components.
type Vitals struct {
	Key        string
	Discipline float64
	Mindset    float64
	Strength   float64
	Momentum   float64
	Confidence float64
	Society    float64
}

// Completion is a done/skipped outcome for one routine item on one date.
// At most one row exists per (date, item_id); a later write replaces it.
type Completion struct {
	Date       string
	ItemID     string
	Status     string
	OccurredAt time.Time
}

// Checkin marks that the user opened the app and checked in on a date.
type Checkin struct {
	Date       string
	OccurredAt time.Time
}

// Workout is a free-form logged session. Exercises is the list of exercise
// names performed.
type Workout struct {
	ID        string
	Date      string
	Title     string
	Exercises []string
	Notes     string
	CreatedAt time.Time
}

// RoutineItem describes one recurring task of the active routine. Cadence is
// a 7-character day-of-week mask (Sunday first, '1' = due). Impact maps vital
// component names to the score delta awarded per completion.
type RoutineItem struct {
	ID       string
	Title    string
	Category string
	Cadence  string
	Active   bool
	Impact   map[string]float64
}
