package engine

import (
	"context"
	"testing"
	"time"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func TestSetStatusIdempotence(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Completions()

	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	store.now = func() time.Time { return t0 }
	if err := store.SetStatus(ctx, "2024-03-01", "42", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}

	t1 := t0.Add(2 * time.Hour)
	store.now = func() time.Time { return t1 }
	if err := store.SetStatus(ctx, "2024-03-01", "42", StatusDone); err != nil {
		t.Fatalf("set status again: %v", err)
	}

	bucket := store.CompletionsForDate("2024-03-01")
	if len(bucket) != 1 {
		t.Fatalf("bucket size=%d, want 1", len(bucket))
	}
	rec := store.GetRecord("2024-03-01", "42")
	if rec == nil {
		t.Fatal("record missing")
	}
	if !rec.OccurredAt.Equal(t1) {
		t.Fatalf("occurredAt=%v, want the later write %v", rec.OccurredAt, t1)
	}
}

func TestRemoveStatusPrunesEmptyBucket(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Completions()

	if err := store.SetStatus(ctx, "2024-03-01", "a", StatusSkipped); err != nil {
		t.Fatalf("set status: %v", err)
	}
	store.RemoveStatus(ctx, "2024-03-01", "a")

	if _, ok := store.GetStatus("2024-03-01", "a"); ok {
		t.Fatal("record still present after remove")
	}
	if _, ok := store.cache["2024-03-01"]; ok {
		t.Fatal("empty date bucket not pruned")
	}

	// Removing an absent key is a no-op.
	store.RemoveStatus(ctx, "2024-03-01", "a")
}

func TestSubscribeNotification(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Completions()

	var events []ChangeEvent
	unsubscribe := store.Subscribe(func(ev ChangeEvent) {
		events = append(events, ev)
	})

	if err := store.SetStatus(ctx, "2024-03-01", "a", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}
	store.RemoveStatus(ctx, "2024-03-01", "a")
	store.RestoreCache(ctx, map[string]map[string]storage.Completion{
		"2024-03-02": {"b": {Status: "done", OccurredAt: time.Now()}},
	})
	store.Clear(ctx)

	want := []ChangeKind{ChangeSet, ChangeRemoved, ChangeRestored, ChangeCleared}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Fatalf("event[%d]=%q, want %q", i, events[i].Kind, kind)
		}
	}
	if events[0].Date != "2024-03-01" || events[0].ItemID != "a" {
		t.Fatalf("set event=%+v, want date/item filled", events[0])
	}

	unsubscribe()
	if err := store.SetStatus(ctx, "2024-03-03", "c", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if len(events) != len(want) {
		t.Fatal("listener fired after unsubscribe")
	}
}

func TestCompletionsSurviveReopen(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	if err := svc.Completions().SetStatus(ctx, "2024-03-01", "a", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := svc.Completions().SetStatus(ctx, "2024-03-01", "b", StatusSkipped); err != nil {
		t.Fatalf("set status: %v", err)
	}

	reopened, err := NewCompletionStore(ctx, storage.NewCompletionRepo(svc.db), svc.log)
	if err != nil {
		t.Fatalf("reopen completion store: %v", err)
	}
	stats := reopened.GetDailyStats("2024-03-01")
	if stats.Done != 1 || stats.Skipped != 1 {
		t.Fatalf("reopened daily stats=%+v, want {1 1}", stats)
	}
}

func TestAllReturnsDeepCopy(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	store := svc.Completions()
	if err := store.SetStatus(ctx, "2024-03-01", "a", StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}

	all := store.All()
	delete(all["2024-03-01"], "a")

	if _, ok := store.GetStatus("2024-03-01", "a"); !ok {
		t.Fatal("mutating the All() copy leaked into the store")
	}
}
