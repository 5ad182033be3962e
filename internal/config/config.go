// Package config provides centralized configuration management for csvnorm.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Picker backends accepted by PICKER_BACKEND.
const (
	PickerNative = "native"
	PickerTUI    = "tui"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Picker    PickerConfig
	Normalize NormalizeConfig
	Logging   LoggingConfig
}

// PickerConfig holds file selection settings.
type PickerConfig struct {
	// Backend selects the file chooser: native or tui (default: native)
	Backend string `env:"PICKER_BACKEND" default:"native"`

	// DefaultOutputName is pre-filled in the save dialog (default: normalized_output.csv)
	DefaultOutputName string `env:"OUTPUT_DEFAULT_NAME" default:"normalized_output.csv"`
}

// NormalizeConfig holds CSV processing settings.
type NormalizeConfig struct {
	// BufferSize is the bufio size for both input and output (default: 4MiB)
	BufferSize int `env:"NORMALIZE_BUFFER_SIZE" default:"4194304"`

	// FlushEvery is the number of rows between writer flushes (default: 100000)
	FlushEvery int `env:"NORMALIZE_FLUSH_EVERY" default:"100000"`

	// ContextCheckInterval is the number of rows between cancellation checks (default: 100)
	ContextCheckInterval int `env:"NORMALIZE_CONTEXT_CHECK_INTERVAL" default:"100"`

	// SanitizeUTF8 replaces invalid UTF-8 bytes with '?' instead of failing (default: false)
	SanitizeUTF8 bool `env:"NORMALIZE_SANITIZE_UTF8" default:"false"`

	// Timeout bounds a single run; zero disables it (default: 0s)
	Timeout time.Duration `env:"NORMALIZE_TIMEOUT" default:"0s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
