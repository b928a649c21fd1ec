package engine

import (
	"time"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

// ProgramLengthDays is the length of the coaching program. Projections
// simulate through this day and no further.
const ProgramLengthDays = 66

// Stats is the derived view of completion history replayed against the
// active routine.
type Stats struct {
	// ProgramDay is the 1-indexed offset from the chosen start date, 0 when
	// the program has not started.
	ProgramDay int

	// CumulativeCompleted[d-1] is the prefix sum of daily done-counts through
	// program day d. Monotonically non-decreasing.
	CumulativeCompleted []int

	// CurrentStreak counts consecutive days with at least one done
	// completion, walking backward from today (or yesterday when today has
	// none yet).
	CurrentStreak int

	// Last7DaysCadence is a 0/1 mask, oldest to newest, of days with at
	// least one done completion.
	Last7DaysCadence [7]int

	// PotentialScores is the optimistic projection: the scores reached if
	// every remaining due task through day 66 completes. Not a forecast.
	PotentialScores storage.Vitals
}

// ComputeStats replays history against the routine over [program day 1,
// today]. A nil start date yields zeroed stats with current-only scores; an
// empty routine leaves PotentialScores equal to the current scores.
func ComputeStats(
	routine []storage.RoutineItem,
	history map[string]map[string]storage.Completion,
	scores *storage.Vitals,
	startDate *time.Time,
	now time.Time,
) Stats {
	var base storage.Vitals
	if scores != nil {
		base = *scores
	}

	stats := Stats{PotentialScores: base}
	stats.CurrentStreak = currentStreak(history, now)
	stats.Last7DaysCadence = last7DaysCadence(history, now)

	if startDate == nil {
		return stats
	}
	start := startOfDay(*startDate)
	today := startOfDay(now)
	if today.Before(start) {
		return stats
	}
	programDay := int(today.Sub(start).Hours()/24) + 1
	stats.ProgramDay = programDay

	stats.CumulativeCompleted = make([]int, programDay)
	sum := 0
	for d := 0; d < programDay; d++ {
		sum += doneCount(history, DayKey(start.AddDate(0, 0, d)))
		stats.CumulativeCompleted[d] = sum
	}

	stats.PotentialScores = projectScores(routine, base, start, programDay)
	return stats
}

// projectScores forward-simulates the unlived program days: every active
// routine item due on a day contributes its per-category impact weights.
// The aggregation goes through the same applyDeltas as live increments.
func projectScores(routine []storage.RoutineItem, base storage.Vitals, start time.Time, programDay int) storage.Vitals {
	deltas := make(map[Vital]float64)
	for day := programDay + 1; day <= ProgramLengthDays; day++ {
		weekday := start.AddDate(0, 0, day-1).Weekday()
		for i := range routine {
			item := &routine[i]
			if !item.Active {
				continue
			}
			cadence, err := ParseCadence(item.Cadence)
			if err != nil || !cadence.DueOn(weekday) {
				continue
			}
			for category, weight := range itemImpact(item) {
				deltas[category] += weight
			}
		}
	}
	return applyDeltas(base, deltas)
}

// itemImpact returns the item's impact weights, defaulting to one point in
// its own category when none are configured.
func itemImpact(item *storage.RoutineItem) map[Vital]float64 {
	if len(item.Impact) > 0 {
		out := make(map[Vital]float64, len(item.Impact))
		for category, weight := range item.Impact {
			v := Vital(category)
			if v.IsValid() {
				out[v] = weight
			}
		}
		return out
	}
	v := Vital(item.Category)
	if !v.IsValid() {
		return nil
	}
	return map[Vital]float64{v: 1}
}

func currentStreak(history map[string]map[string]storage.Completion, now time.Time) int {
	day := startOfDay(now)
	if doneCount(history, DayKey(day)) == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for doneCount(history, DayKey(day)) > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func last7DaysCadence(history map[string]map[string]storage.Completion, now time.Time) [7]int {
	var mask [7]int
	today := startOfDay(now)
	for ago := 6; ago >= 0; ago-- {
		if doneCount(history, DayKey(today.AddDate(0, 0, -ago))) > 0 {
			mask[6-ago] = 1
		}
	}
	return mask
}

func doneCount(history map[string]map[string]storage.Completion, date string) int {
	n := 0
	for _, rec := range history[date] {
		if Status(rec.Status) == StatusDone {
			n++
		}
	}
	return n
}
