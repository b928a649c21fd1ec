package engine

import "github.com/sujink1999/vanta-society-sub000/internal/storage"

// Score bounds. Every component (and society) stays inside [0, 100].
const (
	ScoreMin = 0.0
	ScoreMax = 100.0
)

func clampScore(v float64) float64 {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// applyDeltas adds the given deltas to v, clamps each component to [0, 100]
// and recomputes society as the mean of the five components. Both the live
// increment path and the score projection use this one function so the two
// can never drift apart.
func applyDeltas(v storage.Vitals, deltas map[Vital]float64) storage.Vitals {
	for vital, delta := range deltas {
		switch vital {
		case VitalDiscipline:
			v.Discipline = clampScore(v.Discipline + delta)
		case VitalMindset:
			v.Mindset = clampScore(v.Mindset + delta)
		case VitalStrength:
			v.Strength = clampScore(v.Strength + delta)
		case VitalMomentum:
			v.Momentum = clampScore(v.Momentum + delta)
		case VitalConfidence:
			v.Confidence = clampScore(v.Confidence + delta)
		}
	}
	v.Society = societyOf(v)
	return v
}

// societyOf returns the mean of the five components.
func societyOf(v storage.Vitals) float64 {
	return (v.Discipline + v.Mindset + v.Strength + v.Momentum + v.Confidence) / 5
}
