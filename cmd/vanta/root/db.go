package root

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sujink1999/vanta-society-sub000/internal/backend"
	"github.com/sujink1999/vanta-society-sub000/internal/engine"
	"github.com/sujink1999/vanta-society-sub000/internal/storage"
)

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if os.Getenv("VANTA_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	var remote engine.Backend
	if url := backend.ResolveBaseURL(); url != "" {
		remote = backend.NewClient(url)
	} else {
		remote = backend.Unconfigured{}
	}

	svc, err := engine.NewService(ctx, db, remote, logger)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return svc, cleanup, nil
}
