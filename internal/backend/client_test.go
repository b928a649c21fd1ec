package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func TestPushBackup(t *testing.T) {
	var got engine.BackupPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/backup" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	payload := engine.BackupPayload{
		Scores:    &storage.Vitals{Discipline: 60, Society: 52},
		Timestamp: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := NewClient(srv.URL).PushBackup(context.Background(), payload); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got.Scores == nil || got.Scores.Discipline != 60 {
		t.Fatalf("server saw %+v", got.Scores)
	}
	if !got.Timestamp.Equal(payload.Timestamp) {
		t.Fatalf("server saw timestamp %v", got.Timestamp)
	}
}

func TestPushBackupServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false}`)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).PushBackup(context.Background(), engine.BackupPayload{}); err == nil {
		t.Fatal("push succeeded against a failing server")
	}
}

func TestPushBackupBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).PushBackup(context.Background(), engine.BackupPayload{}); err == nil {
		t.Fatal("push succeeded on a 500")
	}
}

func TestPullBackup(t *testing.T) {
	last := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/backup" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		resp := map[string]any{
			"success": true,
			"data": map[string]any{
				"backupPayload": engine.BackupPayload{
					Scores: &storage.Vitals{Discipline: 70, Mindset: 70, Strength: 70, Momentum: 70, Confidence: 70, Society: 70},
					Completions: map[string]map[string]storage.Completion{
						"2024-03-09": {"a": {Status: "done", OccurredAt: last}},
					},
					Timestamp: last,
				},
				"lastSyncedAt": last,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).PullBackup(context.Background())
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if !res.LastSyncedAt.Equal(last) {
		t.Fatalf("lastSyncedAt=%v, want %v", res.LastSyncedAt, last)
	}
	if res.Payload.Scores == nil || res.Payload.Scores.Discipline != 70 {
		t.Fatalf("scores=%+v", res.Payload.Scores)
	}
	if res.Payload.Completions["2024-03-09"]["a"].Status != "done" {
		t.Fatalf("completions=%+v", res.Payload.Completions)
	}
}

func TestPullBackupMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":            `{"success":true,`,
		"missing lastSynced":  `{"success":true,"data":{"backupPayload":{}}}`,
		"server said failure": `{"success":false}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			if _, err := NewClient(srv.URL).PullBackup(context.Background()); err == nil {
				t.Fatal("pull succeeded on a malformed response")
			}
		})
	}
}
