package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func newTestService(t *testing.T, remote Backend) *Service {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if remote == nil {
		remote = &fakeBackend{}
	}
	svc, err := NewService(ctx, db, remote, zap.NewNop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func initScores(t *testing.T, svc *Service, seed float64) {
	t.Helper()
	err := svc.Scores().Initialize(context.Background(), storage.Vitals{
		Discipline: seed,
		Mindset:    seed,
		Strength:   seed,
		Momentum:   seed,
		Confidence: seed,
	})
	if err != nil {
		t.Fatalf("initialize scores: %v", err)
	}
}

// fakeBackend records pushes and serves a canned pull result.
type fakeBackend struct {
	mu      sync.Mutex
	pushes  []BackupPayload
	pushErr error
	pullRes *PullResult
	pullErr error

	// When set, PushBackup signals started and then blocks until release is
	// closed.
	started chan struct{}
	release chan struct{}
}

func (b *fakeBackend) PushBackup(ctx context.Context, payload BackupPayload) error {
	if b.started != nil {
		b.started <- struct{}{}
	}
	if b.release != nil {
		<-b.release
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pushErr != nil {
		return b.pushErr
	}
	b.pushes = append(b.pushes, payload)
	return nil
}

func (b *fakeBackend) PullBackup(ctx context.Context) (*PullResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pullErr != nil {
		return nil, b.pullErr
	}
	return b.pullRes, nil
}

func (b *fakeBackend) pushCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pushes)
}

// daysAgo builds a timestamp n days before now, at the same clock time.
func daysAgo(now time.Time, n int) time.Time {
	return now.AddDate(0, 0, -n)
}
