package backend

import (
	"context"
	"errors"

	"github.com/sujink1999/vanta-society-sub000/internal/engine"
)

// ErrNotConfigured is returned when no backup endpoint is set. The sync
// coordinator logs it and reports failure like any other sync error.
var ErrNotConfigured = errors.New("backup endpoint not configured (set VANTA_BACKEND_URL)")

// Unconfigured is the backend used when VANTA_BACKEND_URL is unset; every
// call fails with ErrNotConfigured so offline use stays fully functional.
type Unconfigured struct{}

func (Unconfigured) PushBackup(ctx context.Context, payload engine.BackupPayload) error {
	return ErrNotConfigured
}

func (Unconfigured) PullBackup(ctx context.Context) (*engine.PullResult, error) {
	return nil, ErrNotConfigured
}
