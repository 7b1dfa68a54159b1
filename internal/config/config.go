package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage backend identifiers
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

type Config struct {
	Storage StorageConfig
	Logging LoggingConfig
	CLI     CLIConfig
}

type StorageConfig struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

type LoggingConfig struct {
	Level string
}

type CLIConfig struct {
	MaxInputAttempts int
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", "database")

	return &Config{
		Storage: StorageConfig{
			Backend:    strings.ToLower(getEnv("STORAGE_BACKEND", BackendCSV)),
			DataDir:    dataDir,
			SQLitePath: getEnv("SQLITE_PATH", filepath.Join(dataDir, "bankledger.db")),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		CLI: CLIConfig{
			MaxInputAttempts: getIntEnv("MAX_INPUT_ATTEMPTS", 3),
		},
	}
}

// SlogLevel maps the configured level name onto a slog level
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
