// Package config loads client settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the client needs at startup. Flags may
// override individual fields after loading.
type Config struct {
	// ServerURL is the base URL of the REST API, including the /api prefix.
	ServerURL string `env:"FORMADMIN_SERVER" envDefault:"http://localhost:8000/api"`
	// DBPath is the local bolt file holding tokens and preferences.
	// Empty means the per-user default location.
	DBPath string `env:"FORMADMIN_DB"`
	// Timeout bounds every HTTP request.
	Timeout time.Duration `env:"FORMADMIN_TIMEOUT" envDefault:"30s"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"FORMADMIN_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) then the process environment, and fills
// in the default database location.
func Load() (*Config, error) {
	// missing .env is the normal case
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto slog's levels, defaulting to info for
// anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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

func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "formadmin", "formadmin.db"), nil
}
