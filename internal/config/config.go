// Package config loads pilot's ambient process configuration: the paths and
// addresses the embedding program (cmd/pilot, adapters/httpstatus,
// adapters/export) needs but which the statistics core itself never reads
// (spec.md §5, "Environment: none consumed by the core").
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	pilerr "pilot/internal/errors"
)

// Config is pilot's full ambient configuration.
type Config struct {
	// ExportDir is where adapters/export writes readings.csv,
	// unit_readings_*.csv and summary.txt after a session.
	ExportDir string
	// BaselineFile is the optional CSV baseline file adapters/baseline
	// loads at startup (spec.md §6). Empty means "no baseline".
	BaselineFile string
	// StatusAddr is the adapters/httpstatus HTTP server's listen address.
	StatusAddr string
	// StatusEnabled toggles whether cmd/pilot starts the status server.
	StatusEnabled bool
	// LogLevel is one of ERROR|WARN|INFO|DEBUG, checked by Load. Nothing
	// reads it afterwards: internal/log.NewFromEnv takes its level from the
	// LOG_LEVEL environment variable instead.
	LogLevel string
	// SessionDurationLimit is an optional default session duration hard
	// cap applied by cmd/pilot when configuring the workload container.
	SessionDurationLimit time.Duration
}

// Load reads configuration from a .env file (if present) and the process
// environment, applying defaults for anything unset.
func Load() (*Config, error) {
	// godotenv.Load is a no-op (returns an error that is safely ignored)
	// when no .env file exists; real deployments set the environment
	// directly and never ship a .env file.
	_ = godotenv.Load()

	cfg := &Config{
		ExportDir:            getEnvOrDefault("PILOT_EXPORT_DIR", "./pilot-export"),
		BaselineFile:         getEnvOrDefault("PILOT_BASELINE_FILE", ""),
		StatusAddr:           getEnvOrDefault("PILOT_STATUS_ADDR", ":8088"),
		StatusEnabled:        getEnvBoolOrDefault("PILOT_STATUS_ENABLED", false),
		LogLevel:             getEnvOrDefault("PILOT_LOG_LEVEL", "INFO"),
		SessionDurationLimit: getEnvDurationOrDefault("PILOT_SESSION_DURATION_LIMIT", 0),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ExportDir == "" {
		return pilerr.Codef(pilerr.WrongParam, "PILOT_EXPORT_DIR must not be empty")
	}
	switch cfg.LogLevel {
	case "ERROR", "WARN", "INFO", "DEBUG":
	default:
		return pilerr.Codef(pilerr.WrongParam, "PILOT_LOG_LEVEL must be one of ERROR|WARN|INFO|DEBUG, got %q", cfg.LogLevel)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
