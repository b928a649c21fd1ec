package engine

import (
	"fmt"
	"strings"
	"time"
)

// Vital identifies one of the five tracked score components.
type Vital string

const (
	VitalDiscipline Vital = "discipline"
	VitalMindset    Vital = "mindset"
	VitalStrength   Vital = "strength"
	VitalMomentum   Vital = "momentum"
	VitalConfidence Vital = "confidence"
)

// Vitals lists the five components in display order.
var Vitals = []Vital{VitalDiscipline, VitalMindset, VitalStrength, VitalMomentum, VitalConfidence}

func (v Vital) IsValid() bool {
	switch v {
	case VitalDiscipline, VitalMindset, VitalStrength, VitalMomentum, VitalConfidence:
		return true
	default:
		return false
	}
}

func ParseVital(input string) (Vital, error) {
	v := Vital(strings.TrimSpace(strings.ToLower(input)))
	if !v.IsValid() {
		return "", fmt.Errorf("invalid vital: %q", input)
	}
	return v, nil
}

// Status is the stored outcome of a routine item on a date.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
)

func (s Status) IsValid() bool {
	return s == StatusDone || s == StatusSkipped
}

func ParseStatus(input string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %q", input)
	}
	return s, nil
}

// Cadence is a day-of-week due mask, Sunday first.
type Cadence [7]bool

// DueOn reports whether the cadence includes the given weekday.
func (c Cadence) DueOn(day time.Weekday) bool {
	return c[int(day)]
}

func (c Cadence) String() string {
	var b strings.Builder
	for _, on := range c {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseCadence accepts a 7-character 0/1 mask (Sunday first) or the shortcut
// "daily".
func ParseCadence(input string) (Cadence, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "daily" {
		return Cadence{true, true, true, true, true, true, true}, nil
	}
	if len(s) != 7 {
		return Cadence{}, fmt.Errorf("invalid cadence: %q (want 7 digits or \"daily\")", input)
	}
	var c Cadence
	for i := 0; i < 7; i++ {
		switch s[i] {
		case '1':
			c[i] = true
		case '0':
		default:
			return Cadence{}, fmt.Errorf("invalid cadence: %q", input)
		}
	}
	return c, nil
}

// DateKey is the canonical per-day bucket key.
const DateKey = "2006-01-02"

// DayKey formats t as a date bucket key in local time.
func DayKey(t time.Time) string {
	return t.Format(DateKey)
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
