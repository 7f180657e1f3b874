// Package cli provides common initialization utilities for commands:
// env file loading, configuration, logging, and store setup.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"despesas/internal/config"
	"despesas/internal/ledger"
	applog "despesas/internal/log"
	"despesas/internal/store"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger initializes structured logging at the configured level
// and installs it as the process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(applog.ComponentApp, cfg.SlogLevel())
	applog.SetDefault(logger)
	return logger
}

// OpenStore builds the configured store backend.
// Returns the store or exits the process on failure.
func OpenStore(logger *applog.Logger, cfg *config.Config) store.Store {
	st, err := store.New(store.Config{
		Type: store.BackendType(cfg.StoreBackend),
		Path: cfg.StorePath,
	})
	if err != nil {
		logger.Error("Failed to initialize store",
			applog.FieldError, err,
			applog.FieldBackend, cfg.StoreBackend,
			applog.FieldStorePath, cfg.StorePath)
		os.Exit(1)
	}
	logger.Info("Initialized store",
		applog.FieldBackend, cfg.StoreBackend,
		applog.FieldStorePath, cfg.StorePath)
	return st
}

// OpenLedger loads the persisted collection into a ready ledger.
// Returns the ledger or exits the process on failure.
func OpenLedger(ctx context.Context, logger *applog.Logger, st store.Store) *ledger.Ledger {
	book, err := ledger.Open(ctx, st)
	if err != nil {
		logger.Error("Failed to load expense ledger", applog.FieldError, err)
		os.Exit(1)
	}
	return book
}
