// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load(ctx) layers an optional
//   YAML file and environment overrides on top.
// - External errors must be wrapped via this package's sentinel errors.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `koanf:"db_path"`

	// QueueSize bounds the in-memory view event queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of view recorder workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the view deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// RecommendCount is how many pins enrich the notifications feed.
	RecommendCount int `koanf:"recommend_count"`

	// MaxRecommendCount caps GET /recommendations?count.
	MaxRecommendCount int `koanf:"max_recommend_count"`

	// TopCategoryCount is how many profile categories drive scoring.
	TopCategoryCount int `koanf:"top_category_count"`

	// MaxPageSize caps the notifications page size.
	MaxPageSize int `koanf:"max_page_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		DBPath:            "./pinboard.db",
		QueueSize:         100_000,
		WorkerCount:       runtime.NumCPU() * 2,
		DedupeSize:        50_000,
		RecommendCount:    5,
		MaxRecommendCount: 50,
		TopCategoryCount:  3,
		MaxPageSize:       100,
	}
}
