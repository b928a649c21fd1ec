package engine

import "time"

// Engagement classifies recent user activity. Computed, never persisted.
type Engagement string

const (
	EngagementOnStreak      Engagement = "on_streak"
	EngagementEngaged       Engagement = "engaged"
	EngagementInactiveToday Engagement = "inactive_today"
	EngagementMissing1Day   Engagement = "missing_1_day"
	EngagementMissing2Plus  Engagement = "missing_2_plus_days"
)

// ClassifyEngagement derives the engagement state. Precedence, first match
// wins:
//
//  1. streak of 3+ days          -> on_streak
//  2. activity today             -> engaged
//  3. last activity < 1 day ago  -> inactive_today
//  4. last activity 1 day ago    -> missing_1_day
//  5. older, or none ever        -> missing_2_plus_days
//
// "Activity" is a check-in or at least one done completion; lastActivity is
// the newest such timestamp, nil when nothing was ever recorded.
func ClassifyEngagement(now time.Time, streak int, activeToday bool, lastActivity *time.Time) Engagement {
	if streak >= 3 {
		return EngagementOnStreak
	}
	if activeToday {
		return EngagementEngaged
	}
	if lastActivity == nil {
		return EngagementMissing2Plus
	}
	switch days := int(now.Sub(*lastActivity).Hours() / 24); days {
	case 0:
		return EngagementInactiveToday
	case 1:
		return EngagementMissing1Day
	default:
		return EngagementMissing2Plus
	}
}
