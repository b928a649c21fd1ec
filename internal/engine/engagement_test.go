package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEngagement(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)
	lastNight := now.Add(-20 * time.Hour)

	tests := []struct {
		name         string
		streak       int
		activeToday  bool
		lastActivity *time.Time
		want         Engagement
	}{
		{"no history ever", 0, false, nil, EngagementMissing2Plus},
		{"active today", 0, true, &now, EngagementEngaged},
		{"active yesterday only", 0, false, &yesterday, EngagementMissing1Day},
		{"active late last night", 0, false, &lastNight, EngagementInactiveToday},
		{"three days quiet", 0, false, &threeDaysAgo, EngagementMissing2Plus},
		{"streak beats everything", 5, true, &now, EngagementOnStreak},
		{"streak threshold", 3, true, &now, EngagementOnStreak},
		{"below streak threshold", 2, true, &now, EngagementEngaged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEngagement(now, tt.streak, tt.activeToday, tt.lastActivity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceEngagement(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.Local)

	t.Run("no history ever", func(t *testing.T) {
		svc := newTestService(t, nil)
		assert.Equal(t, EngagementMissing2Plus, svc.Engagement(now))
	})

	t.Run("one done completion today", func(t *testing.T) {
		svc := newTestService(t, nil)
		svc.Completions().now = func() time.Time { return now }
		require.NoError(t, svc.Completions().SetStatus(ctx, DayKey(now), "a", StatusDone))
		assert.Equal(t, EngagementEngaged, svc.Engagement(now))
	})

	t.Run("done yesterday none today", func(t *testing.T) {
		svc := newTestService(t, nil)
		yesterday := daysAgo(now, 1)
		svc.Completions().now = func() time.Time { return yesterday }
		require.NoError(t, svc.Completions().SetStatus(ctx, DayKey(yesterday), "a", StatusDone))
		assert.Equal(t, EngagementMissing1Day, svc.Engagement(now))
	})

	t.Run("five day streak including today", func(t *testing.T) {
		svc := newTestService(t, nil)
		for ago := 0; ago < 5; ago++ {
			day := daysAgo(now, ago)
			svc.Completions().now = func() time.Time { return day }
			require.NoError(t, svc.Completions().SetStatus(ctx, DayKey(day), "a", StatusDone))
		}
		assert.Equal(t, EngagementOnStreak, svc.Engagement(now))
	})

	t.Run("checkin alone counts as activity", func(t *testing.T) {
		svc := newTestService(t, nil)
		svc.Checkins().now = func() time.Time { return now }
		svc.Checkins().Mark(ctx, DayKey(now))
		assert.Equal(t, EngagementEngaged, svc.Engagement(now))
	})

	t.Run("skipped today is not activity", func(t *testing.T) {
		svc := newTestService(t, nil)
		svc.Completions().now = func() time.Time { return now }
		require.NoError(t, svc.Completions().SetStatus(ctx, DayKey(now), "a", StatusSkipped))
		assert.Equal(t, EngagementMissing2Plus, svc.Engagement(now))
	})
}
