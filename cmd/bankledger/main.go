package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"bankledger/internal/cli"
	"bankledger/internal/config"
	"bankledger/internal/registry"
	"bankledger/internal/services"
	"bankledger/internal/storage"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))

	store, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	accounts, err := store.Load()
	if err != nil {
		logger.Error("failed to load persisted accounts", "error", err)
		os.Exit(1)
	}

	reg := registry.New()
	for _, account := range accounts {
		if err := reg.Add(account); err != nil {
			logger.Error("failed to register persisted account",
				"number", account.Number, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("ledger loaded", "accounts", reg.Len(), "backend", cfg.Storage.Backend)

	engine := services.NewLedgerService(reg, store, logger)
	menu := cli.New(engine, os.Stdin, os.Stdout, cfg.CLI.MaxInputAttempts)
	menu.Run()
}

func newStore(cfg *config.Config) (services.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendCSV:
		return storage.NewCSVStore(cfg.Storage.DataDir)
	case config.BackendSQLite:
		return storage.NewGormStore(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
