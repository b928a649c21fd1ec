package engine

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testPlanner(state Engagement) *NotificationPlanner {
	return NewNotificationPlanner(
		func(time.Time) Engagement { return state },
		nil,
		zap.NewNop(),
		rand.New(rand.NewSource(1)),
	)
}

func TestPlanForPicksFromPool(t *testing.T) {
	p := testPlanner(EngagementOnStreak)
	pool := messagePools[SlotMorning][EngagementOnStreak]

	for i := 0; i < 20; i++ {
		msg := p.PlanFor(SlotMorning, EngagementOnStreak)
		found := false
		for _, want := range pool {
			if msg == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("message %q not in the morning/on-streak pool", msg)
		}
	}
}

func TestPlanForFallsBackToSlotDefault(t *testing.T) {
	p := testPlanner(EngagementOnStreak)

	// No midday copy exists for an on-streak user.
	got := p.PlanFor(SlotMidday, EngagementOnStreak)
	if got != defaultMessages[SlotMidday] {
		t.Fatalf("message=%q, want slot default %q", got, defaultMessages[SlotMidday])
	}
}

func TestPlanForEveryPairProducesContent(t *testing.T) {
	p := testPlanner(EngagementEngaged)
	states := []Engagement{
		EngagementOnStreak, EngagementEngaged, EngagementInactiveToday,
		EngagementMissing1Day, EngagementMissing2Plus,
	}
	for _, slot := range slotOrder {
		for _, state := range states {
			if p.PlanFor(slot, state) == "" {
				t.Fatalf("empty message for %s/%s", slot, state)
			}
		}
	}
}

func TestCurrentSlot(t *testing.T) {
	day := func(hour int) time.Time {
		return time.Date(2024, 3, 10, hour, 30, 0, 0, time.Local)
	}
	tests := []struct {
		hour int
		want Slot
	}{
		{6, SlotNight}, // before the morning window opens
		{8, SlotMorning},
		{12, SlotMorning},
		{13, SlotMidday},
		{19, SlotEvening},
		{22, SlotNight},
		{23, SlotNight},
	}
	for _, tt := range tests {
		if got := CurrentSlot(day(tt.hour)); got != tt.want {
			t.Errorf("CurrentSlot(%02d:30)=%s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestNextSlot(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	slot, at := NextSlot(now)
	if slot != SlotEvening {
		t.Fatalf("slot=%s, want evening", slot)
	}
	if at.Hour() != 19 || at.Day() != 10 {
		t.Fatalf("fire time=%v, want 19:00 same day", at)
	}

	// After the last window, the next fire is tomorrow morning.
	late := time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local)
	slot, at = NextSlot(late)
	if slot != SlotMorning {
		t.Fatalf("slot=%s, want morning", slot)
	}
	if at.Day() != 11 || at.Hour() != 8 {
		t.Fatalf("fire time=%v, want 08:00 next day", at)
	}
}
