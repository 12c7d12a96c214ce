// Package config provides loading and parsing of the toolkit's server
// configuration. Settings come from an optional YAML file with
// environment-variable overrides, so containerized deployments can run
// without any file at all.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the geozarr HTTP service.
type Config struct {
	// Addr is the listen address of the HTTP API.
	Addr string `yaml:"addr" env:"GEOZARR_ADDR"`

	// StoreTimeout bounds how long opening and reading a remote store
	// may take per request. Validation itself imposes no deadline; this
	// is the one place a timeout policy applies.
	StoreTimeout time.Duration `yaml:"store_timeout" env:"GEOZARR_STORE_TIMEOUT"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" env:"GEOZARR_LOG_LEVEL"`

	// Tracing enables the OpenTelemetry tracer around validation
	// requests.
	Tracing bool `yaml:"tracing" env:"GEOZARR_TRACING"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Addr:         ":8080",
		StoreTimeout: 30 * time.Second,
		LogLevel:     "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("config: store_timeout must be positive, got %s", c.StoreTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel to its slog constant.
func (c Config) SlogLevel() slog.Level {
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
