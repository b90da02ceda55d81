// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory match queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of standings workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache. Zero means unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// FormLength is how many recent results each standing keeps.
	FormLength int `koanf:"form_length"`

	// MaxStandingsLimit caps GET /standings/{tournament}?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`

	// ArchivePath points at the SQLite match archive. Empty disables it.
	ArchivePath string `koanf:"archive_path"`

	// ShutdownTimeout bounds graceful HTTP and worker shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MetricsEnabled turns Prometheus collection on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsBuckets overrides the latency histogram buckets, in milliseconds.
	// Env form: TABELLONE_METRICS_BUCKETS=1,5,25,100
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsRefreshInterval sets how often background loops refresh gauges.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		EventQueueSize:    10_000,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        50_000,
		FormLength:        5,
		MaxStandingsLimit: 100,
		ShutdownTimeout:   10 * time.Second,

		MetricsEnabled:         true,
		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EventQueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.EventQueueSize)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.FormLength <= 0:
		return fmt.Errorf("%w: form_length must be positive, got %d", ErrInvalidConfig, c.FormLength)
	case c.MaxStandingsLimit <= 0:
		return fmt.Errorf("%w: max_standings_limit must be positive, got %d", ErrInvalidConfig, c.MaxStandingsLimit)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	case c.MetricsRefreshInterval <= 0:
		return fmt.Errorf("%w: metrics_refresh_interval must be positive", ErrInvalidConfig)
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing, got %v",
				ErrInvalidConfig, c.MetricsBuckets)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
