package engine

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Slot is one of the four daily notification windows.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotMidday  Slot = "midday"
	SlotEvening Slot = "evening"
	SlotNight   Slot = "night"
)

// slotHours maps each slot to its local-clock hour.
var slotHours = map[Slot]int{
	SlotMorning: 8,
	SlotMidday:  13,
	SlotEvening: 19,
	SlotNight:   22,
}

// slotOrder is the daily firing order.
var slotOrder = [4]Slot{SlotMorning, SlotMidday, SlotEvening, SlotNight}

// Notifier receives composed messages. Delivery (OS notification, push) is
// outside this layer.
type Notifier interface {
	Notify(slot Slot, message string) error
}

// messagePools holds the content variants per (slot, engagement) pair. An
// absent pool falls back to the slot default.
var messagePools = map[Slot]map[Engagement][]string{
	SlotMorning: {
		EngagementOnStreak: {
			"Your streak is alive. Protect it with the first task of the day.",
			"Day after day you show up. Make this morning count too.",
		},
		EngagementEngaged: {
			"Strong start already. Stack the next win.",
		},
		EngagementInactiveToday: {
			"Fresh day, clean slate. One small task gets you moving.",
			"The first check-in of the day is the easiest. Do it now.",
		},
		EngagementMissing1Day: {
			"Yesterday slipped. Today doesn't have to.",
			"One day off is a rest. Two is a pattern. Start now.",
		},
		EngagementMissing2Plus: {
			"Your routine is waiting right where you left it.",
			"Come back with one task. That's the whole ask.",
		},
	},
	SlotMidday: {
		EngagementEngaged: {
			"Halfway through the day and already on the board. Keep going.",
		},
		EngagementInactiveToday: {
			"Nothing logged yet today. A two-minute task breaks the ice.",
		},
		EngagementMissing1Day: {
			"Lunchtime reset: pick the easiest item and clear it.",
		},
	},
	SlotEvening: {
		EngagementOnStreak: {
			"Close the day like you opened it: on streak.",
		},
		EngagementEngaged: {
			"A couple of items left. Finish the day clean.",
		},
		EngagementInactiveToday: {
			"The day isn't over. One done task still counts.",
			"Evenings are for comebacks. Log something.",
		},
	},
	SlotNight: {
		EngagementOnStreak: {
			"Streak secured. Get the sleep that keeps it going.",
		},
		EngagementEngaged: {
			"Good work today. Tomorrow's routine is already set.",
		},
		EngagementInactiveToday: {
			"Last call for today's check-in.",
		},
	},
}

// defaultMessages is the deterministic fallback per slot when a pool is
// empty.
var defaultMessages = map[Slot]string{
	SlotMorning: "Morning check-in: your routine is ready.",
	SlotMidday:  "Midday nudge: keep your vitals moving.",
	SlotEvening: "Evening review: close out today's tasks.",
	SlotNight:   "Wind down and check in before the day ends.",
}

// NotificationPlanner maps (slot, engagement) to message content and drives
// the four daily triggers. The engagement state is recomputed when a trigger
// fires, not frozen at schedule time, so the tone always matches the user's
// actual recent activity.
type NotificationPlanner struct {
	engagement func(time.Time) Engagement
	notifier   Notifier
	log        *zap.Logger
	rng        *rand.Rand

	now func() time.Time
}

// NewNotificationPlanner wires the planner. A nil rng gets a time-seeded
// source; tests inject a fixed seed.
func NewNotificationPlanner(engagement func(time.Time) Engagement, notifier Notifier, log *zap.Logger, rng *rand.Rand) *NotificationPlanner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &NotificationPlanner{
		engagement: engagement,
		notifier:   notifier,
		log:        log,
		rng:        rng,
		now:        time.Now,
	}
}

// PlanFor picks one content variant uniformly at random from the pool for
// the pair, or the slot default when the pool is empty.
func (p *NotificationPlanner) PlanFor(slot Slot, state Engagement) string {
	pool := messagePools[slot][state]
	if len(pool) == 0 {
		return defaultMessages[slot]
	}
	return pool[p.rng.Intn(len(pool))]
}

// CurrentSlot returns the slot whose window covers now: the latest slot
// whose hour has passed today, or night before the morning hour.
func CurrentSlot(now time.Time) Slot {
	current := SlotNight
	for _, slot := range slotOrder {
		if now.Hour() >= slotHours[slot] {
			current = slot
		}
	}
	return current
}

// NextSlot returns the next slot to fire after now and its local fire time.
func NextSlot(now time.Time) (Slot, time.Time) {
	for _, slot := range slotOrder {
		at := time.Date(now.Year(), now.Month(), now.Day(), slotHours[slot], 0, 0, 0, now.Location())
		if at.After(now) {
			return slot, at
		}
	}
	first := slotOrder[0]
	tomorrow := now.AddDate(0, 0, 1)
	return first, time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), slotHours[first], 0, 0, 0, now.Location())
}

// Run fires the recurring daily triggers until ctx is canceled. Notifier
// failures are logged and the loop keeps going.
func (p *NotificationPlanner) Run(ctx context.Context) {
	for {
		slot, at := NextSlot(p.now())
		timer := time.NewTimer(time.Until(at))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		fireAt := p.now()
		state := p.engagement(fireAt)
		message := p.PlanFor(slot, state)
		if err := p.notifier.Notify(slot, message); err != nil {
			p.log.Error("notification delivery failed",
				zap.String("slot", string(slot)),
				zap.String("state", string(state)),
				zap.Error(err))
			continue
		}
		p.log.Info("notification sent",
			zap.String("slot", string(slot)),
			zap.String("state", string(state)))
	}
}
