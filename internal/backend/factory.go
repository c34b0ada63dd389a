package backend

import (
	"context"
	"fmt"

	"budgetbuddy/internal/config"
	applog "budgetbuddy/internal/log"
	"budgetbuddy/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateRepository implements Factory.CreateRepository
func (f *DefaultFactory) CreateRepository(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case JSONBackend:
		return f.createJSONBackend(cfg)
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}

func (f *DefaultFactory) createJSONBackend(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewJSONRepository(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JSON repository: %w", err)
	}

	f.logger.Info("Initialized JSON file backend",
		applog.FieldPathOnDisk, cfg.LedgerPath)

	return &Result{Repository: repo}, nil
}

func (f *DefaultFactory) createSQLiteBackend(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		applog.FieldPathOnDisk, cfg.SQLiteDBPath)

	return &Result{
		Repository: repo,
		Cleanup:    repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Initialized memory backend")
	return &Result{Repository: storage.NewMemoryRepository()}, nil
}
