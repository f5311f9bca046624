// Package backend selects and constructs the profile store and rate source
// from configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"budgettracker/internal/config"
	"budgettracker/internal/profiles"
	"budgettracker/internal/profiles/memory"
	"budgettracker/internal/rates"
	gsource "budgettracker/internal/rates/google"
	"budgettracker/internal/storage"
)

// CleanupFunc releases resources held by a constructed backend.
type CleanupFunc func() error

// StoreResult contains the store instance and its cleanup function.
type StoreResult struct {
	Store   profiles.Store
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the configured profile store.
func (f *Factory) CreateStore(cfg *config.Config) (*StoreResult, error) {
	switch cfg.ProfileBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite profile store", "db_path", cfg.SQLiteDBPath)
		return &StoreResult{Store: store, Cleanup: store.Close}, nil

	case "memory":
		store := memory.NewFromDir(cfg.ProfileDir)
		f.logger.Info("Initialized memory profile store", "dir", cfg.ProfileDir)
		return &StoreResult{Store: store, Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unsupported profile backend: %s", cfg.ProfileBackend)
	}
}

// CreateRateSource builds the configured rate source.
func (f *Factory) CreateRateSource(ctx context.Context, cfg *config.Config) (rates.Source, error) {
	switch cfg.RatesBackend {
	case "file":
		f.logger.Info("Using file rate source", "path", cfg.RatesFilePath)
		return rates.FileSource{Path: cfg.RatesFilePath}, nil

	case "sheets":
		src, err := gsource.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets rate source: %w", err)
		}
		f.logger.Info("Using Google Sheets rate source")
		return src, nil

	default:
		return nil, fmt.Errorf("unsupported rates backend: %s", cfg.RatesBackend)
	}
}
