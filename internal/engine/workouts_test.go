package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func TestWorkoutSaveGeneratesID(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Workouts()

	id := store.Save(ctx, storage.Workout{Date: "2024-03-01", Title: "push day"})
	if id == "" {
		t.Fatal("save returned empty id")
	}
	w := store.Get(id)
	if w == nil {
		t.Fatal("saved workout missing")
	}
	if w.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}

	other := store.Save(ctx, storage.Workout{Date: "2024-03-01", Title: "pull day"})
	if other == id {
		t.Fatal("two saves produced the same id")
	}
}

func TestWorkoutUpdateUnknownID(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	err := svc.Workouts().Update(ctx, storage.Workout{ID: "nope", Date: "2024-03-01"})
	if !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("update err=%v, want ErrWorkoutNotFound", err)
	}
	if err := svc.Workouts().Delete(ctx, "nope"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("delete err=%v, want ErrWorkoutNotFound", err)
	}
}

func TestWorkoutUpdateKeepsCreatedAt(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Workouts()

	created := time.Date(2024, 3, 1, 7, 0, 0, 0, time.Local)
	store.now = func() time.Time { return created }
	id := store.Save(ctx, storage.Workout{Date: "2024-03-01", Title: "push day"})

	err := store.Update(ctx, storage.Workout{ID: id, Date: "2024-03-01", Title: "push day, heavy"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	w := store.Get(id)
	if w.Title != "push day, heavy" {
		t.Fatalf("title=%q after update", w.Title)
	}
	if !w.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed on update: %v", w.CreatedAt)
	}
}

func TestWorkoutRangeQueriesSortDescending(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Workouts()

	store.Save(ctx, storage.Workout{Date: "2024-03-05", Title: "a"})
	store.Save(ctx, storage.Workout{Date: "2024-03-20", Title: "b"})
	store.Save(ctx, storage.Workout{Date: "2024-03-12", Title: "c"})
	store.Save(ctx, storage.Workout{Date: "2024-04-01", Title: "next month"})

	month := store.ForMonth(2024, time.March)
	if len(month) != 3 {
		t.Fatalf("forMonth returned %d sessions, want 3", len(month))
	}
	for i := 1; i < len(month); i++ {
		if month[i].Date > month[i-1].Date {
			t.Fatalf("not descending: %s before %s", month[i-1].Date, month[i].Date)
		}
	}

	day := store.ForDate("2024-03-12")
	if len(day) != 1 || day[0].Title != "c" {
		t.Fatalf("forDate=%+v, want the single 03-12 session", day)
	}
}

func TestWorkoutExerciseNames(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Workouts()

	store.Save(ctx, storage.Workout{Date: "2024-03-01", Exercises: []string{"squat", "bench"}})
	store.Save(ctx, storage.Workout{Date: "2024-03-02", Exercises: []string{"bench", "deadlift"}})

	got := store.ExerciseNames()
	want := []string{"bench", "deadlift", "squat"}
	if len(got) != len(want) {
		t.Fatalf("names=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names=%v, want %v", got, want)
		}
	}
}

func TestWorkoutsSurviveReopen(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	id := svc.Workouts().Save(ctx, storage.Workout{
		Date:      "2024-03-01",
		Title:     "push day",
		Exercises: []string{"bench", "dips"},
		Notes:     "felt strong",
	})

	reopened, err := NewWorkoutStore(ctx, storage.NewWorkoutRepo(svc.db), svc.log)
	if err != nil {
		t.Fatalf("reopen workout store: %v", err)
	}
	w := reopened.Get(id)
	if w == nil {
		t.Fatal("workout missing after reopen")
	}
	if len(w.Exercises) != 2 || w.Exercises[0] != "bench" {
		t.Fatalf("exercises=%v after reopen", w.Exercises)
	}
	if w.Notes != "felt strong" {
		t.Fatalf("notes=%q after reopen", w.Notes)
	}
}
