// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// WorkerProgram is the interpreter used to run the generation worker.
	// Defaults to "python3".
	WorkerProgram string

	// WorkerScript is the path to the worker wrapper script. Required.
	WorkerScript string

	// FullTimeout bounds a full-plan regeneration. Defaults to 180s.
	FullTimeout time.Duration

	// DayTimeout bounds a single-day generation. Defaults to 90s.
	DayTimeout time.Duration

	// ProgressInterval is the cadence of cosmetic stage advancement while a
	// full regeneration is in flight. Defaults to 10s.
	ProgressInterval time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		WorkerProgram: getEnv("WORKER_PROGRAM", "python3"),
	}

	var err error
	if cfg.FullTimeout, err = getDuration("GENERATION_FULL_TIMEOUT", 180*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.DayTimeout, err = getDuration("GENERATION_DAY_TIMEOUT", 90*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ProgressInterval, err = getDuration("GENERATION_PROGRESS_INTERVAL", 10*time.Second); err != nil {
		return Config{}, err
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.WorkerScript = os.Getenv("WORKER_SCRIPT")
	if cfg.WorkerScript == "" {
		missing = append(missing, "WORKER_SCRIPT")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the environment variable named by key as a Go duration
// string (e.g. "90s", "3m"), or returns fallback when unset.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
