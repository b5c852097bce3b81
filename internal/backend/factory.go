package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spendlens/internal/currency"
	"spendlens/internal/datasource/memory"
	"spendlens/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
	rates  *currency.Table
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger, rates *currency.Table) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	if rates == nil {
		rates = currency.DefaultTable()
	}
	return &DefaultFactory{
		logger: logger,
		rates:  rates,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	if err := storage.RunMigrations(config.SQLiteDBPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo, err := storage.NewRepository(config.SQLiteDBPath, f.rates)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store := memory.New(f.rates)
	if config.SeedDemoData {
		memory.SeedDemoData(store)
	}

	f.logger.Info("Initialized memory backend", "seeded", config.SeedDemoData)

	return &BackendResult{
		Store:   store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
