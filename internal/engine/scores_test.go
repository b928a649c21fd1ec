package engine

import (
	"context"
	"math"
	"testing"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func TestScoreClamp(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	initScores(t, svc, 50)

	if err := svc.Scores().IncrementOne(ctx, VitalStrength, 1000); err != nil {
		t.Fatalf("increment: %v", err)
	}

	v := svc.Scores().Get()
	if v == nil {
		t.Fatal("scores nil after initialize")
	}
	if v.Strength != 100 {
		t.Fatalf("strength=%v, want 100", v.Strength)
	}
	wantSociety := (v.Discipline + v.Mindset + v.Strength + v.Momentum + v.Confidence) / 5
	if v.Society != wantSociety {
		t.Fatalf("society=%v, want %v", v.Society, wantSociety)
	}

	if err := svc.Scores().IncrementOne(ctx, VitalStrength, -1000); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if got := svc.Scores().Get().Strength; got != 0 {
		t.Fatalf("strength=%v, want 0 after clamp low", got)
	}
}

func TestSocietyInvariantAfterIncrementSequence(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	initScores(t, svc, 40)

	steps := []map[Vital]float64{
		{VitalDiscipline: 3.5},
		{VitalMindset: -12, VitalConfidence: 7.25},
		{VitalStrength: 200},
		{VitalMomentum: 0.1, VitalDiscipline: -3.5},
		{VitalConfidence: -0.75},
	}
	for _, deltas := range steps {
		if err := svc.Scores().IncrementMany(ctx, deltas); err != nil {
			t.Fatalf("increment %v: %v", deltas, err)
		}
		v := svc.Scores().Get()
		mean := (v.Discipline + v.Mindset + v.Strength + v.Momentum + v.Confidence) / 5
		if math.Abs(v.Society-mean) > 1e-9 {
			t.Fatalf("society=%v, want mean %v", v.Society, mean)
		}
	}
}

func TestScoreStoreInitialization(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	if got := svc.Scores().Get(); got != nil {
		t.Fatalf("Get before initialize = %+v, want nil", got)
	}
	if err := svc.Scores().IncrementOne(ctx, VitalMindset, 1); err != ErrNotInitialized {
		t.Fatalf("increment before initialize err=%v, want ErrNotInitialized", err)
	}

	initScores(t, svc, 50)
	err := svc.Scores().Initialize(ctx, storage.Vitals{})
	if err != ErrAlreadyInitialized {
		t.Fatalf("second initialize err=%v, want ErrAlreadyInitialized", err)
	}

	svc.Scores().Clear(ctx)
	if got := svc.Scores().Get(); got != nil {
		t.Fatalf("Get after clear = %+v, want nil", got)
	}
}

func TestScoresSurviveReopen(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	initScores(t, svc, 50)
	if err := svc.Scores().IncrementOne(ctx, VitalDiscipline, 10); err != nil {
		t.Fatalf("increment: %v", err)
	}

	reopened, err := NewScoreStore(ctx, storage.NewVitalsRepo(svc.db), svc.log)
	if err != nil {
		t.Fatalf("reopen score store: %v", err)
	}
	v := reopened.Get()
	if v == nil || v.Discipline != 60 {
		t.Fatalf("reopened discipline=%+v, want 60", v)
	}
}

func TestEndToEndDailyFlow(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	initScores(t, svc, 50)

	if got := svc.Scores().Get().Society; got != 50 {
		t.Fatalf("society=%v, want 50", got)
	}

	if err := svc.Completions().SetStatus(ctx, "2024-01-01", "7", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := svc.Scores().IncrementOne(ctx, VitalDiscipline, 10); err != nil {
		t.Fatalf("increment: %v", err)
	}

	v := svc.Scores().Get()
	if v.Discipline != 60 {
		t.Fatalf("discipline=%v, want 60", v.Discipline)
	}
	for name, got := range map[string]float64{
		"mindset": v.Mindset, "strength": v.Strength,
		"momentum": v.Momentum, "confidence": v.Confidence,
	} {
		if got != 50 {
			t.Fatalf("%s=%v, want 50", name, got)
		}
	}
	if v.Society != 52 {
		t.Fatalf("society=%v, want 52", v.Society)
	}

	stats := svc.Completions().GetDailyStats("2024-01-01")
	if stats.Done != 1 || stats.Skipped != 0 {
		t.Fatalf("daily stats=%+v, want {1 0}", stats)
	}
}
