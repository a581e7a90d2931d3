// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// APIBaseURL and APIToken configure the log-hosting API client. An
	// empty token selects the built-in synthetic client.
	APIBaseURL string `koanf:"api_base_url"`
	APIToken   string `koanf:"api_token"`

	// RatePerSecond and RateBurst bound outbound API calls.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`

	// MaxRetries and BaseBackoffMS shape the transient-failure retry policy.
	MaxRetries    int `koanf:"max_retries"`
	BaseBackoffMS int `koanf:"base_backoff_ms"`

	// Workers bounds concurrent report ingestion.
	Workers int `koanf:"workers"`

	// GCDLengthMS and GapThresholdMS tune the cast-activity model.
	GCDLengthMS    int64 `koanf:"gcd_length_ms"`
	GapThresholdMS int64 `koanf:"gap_threshold_ms"`

	// Encounters the benchmark pipeline maintains documents for.
	Encounters []int `koanf:"encounters"`

	// WatchedGuilds is the curated discovery list.
	WatchedGuilds []int `koanf:"watched_guilds"`

	// MaxPerEncounter caps discovered candidates per encounter.
	MaxPerEncounter int `koanf:"max_per_encounter"`

	// DocumentDir persists benchmark documents as JSON, one per encounter.
	// Empty disables persistence.
	DocumentDir string `koanf:"document_dir"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		APIBaseURL:      "https://classic.warcraftlogs.com/v1",
		RatePerSecond:   2,
		RateBurst:       10,
		MaxRetries:      4,
		BaseBackoffMS:   500,
		Workers:         runtime.NumCPU(),
		GCDLengthMS:     1500,
		GapThresholdMS:  2500,
		Encounters:      []int{709, 711, 712, 713, 714, 715},
		MaxPerEncounter: 25,
		DocumentDir:     "benchmarks",
	}
}
