package app

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Root string // workspace root
	Glob string // build file pattern, relative to Root

	LogFormat   string
	LogLevel    string
	MetricsPort int
	WorkerCount int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Root == "" {
		return nil, errors.New("Root is a required configuration field and cannot be empty")
	}
	if !doublestar.ValidatePattern(cfg.Glob) || cfg.Glob == "" {
		return nil, fmt.Errorf("invalid build file glob %q", cfg.Glob)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return nil, fmt.Errorf("metrics-port %d is out of range", cfg.MetricsPort)
	}

	return &cfg, nil
}
