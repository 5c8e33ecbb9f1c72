package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kopilka/internal/storage"
	"kopilka/internal/store/memory"
	"kopilka/internal/store/rest"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case RESTBackend:
		return f.createRESTBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createRESTBackend(config Config) (*Result, error) {
	if config.StoreURL == "" {
		return nil, fmt.Errorf("rest backend requires a store URL")
	}
	client := rest.NewClient(rest.Config{
		BaseURL: config.StoreURL,
		Timeout: config.StoreTimeout,
	})

	f.logger.Info("Initialized REST backend", "store_url", config.StoreURL)

	return &Result{Store: client, Cleanup: nil}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Initialized memory backend")
	return &Result{Store: memory.New(), Cleanup: nil}, nil
}
