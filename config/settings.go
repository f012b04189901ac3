// Package config provides configuration structures for the dedupe engine.
// It defines dataset settings: matching bounds, scan worker counts, result
// buffer sizing, and the scrutiny score threshold.
package config

import (
	"strings"
)

// DatasetSettings contains all configuration options for a dataset.
//
// Worker count semantics (used by every scan over the dataset):
//   - 0 uses all available hardware threads
//   - -1 uses all available hardware threads minus one
//   - n > 0 uses exactly n workers
type DatasetSettings struct {
	Name                  string  `json:"name"`                    // Unique name for the dataset
	MaxWordLength         int     `json:"max_word_length"`         // Per-word byte bound for matching; longer words are truncated (default 1023, -1 = unbounded)
	InitialBufferCapacity int     `json:"initial_buffer_capacity"` // Starting capacity of each worker's result buffer (default 1000)
	MaxBufferCapacity     int     `json:"max_buffer_capacity"`     // Hard cap on a worker's result buffer; 0 = unbounded. Hitting it aborts the scan.
	WorkerCount           int     `json:"worker_count"`            // Default worker count for scans (0 / -1 / n semantics)
	MinScore              float64 `json:"min_score"`               // Scrutiny threshold for scored results; 0 disables scoring
}

// Validate checks the settings for basic requirements and returns a list of
// human-readable conflicts. An empty list means the settings are usable.
func (settings *DatasetSettings) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Name) == "" {
		conflicts = append(conflicts, "Dataset name cannot be empty or whitespace-only")
	}
	if settings.WorkerCount < -1 {
		conflicts = append(conflicts, "worker_count must be -1, 0, or a positive integer")
	}
	if settings.MaxWordLength < -1 {
		conflicts = append(conflicts, "max_word_length must be -1 (unbounded), 0 (default), or a positive integer")
	}
	if settings.InitialBufferCapacity < 0 {
		conflicts = append(conflicts, "initial_buffer_capacity cannot be negative")
	}
	if settings.MaxBufferCapacity < 0 {
		conflicts = append(conflicts, "max_buffer_capacity cannot be negative")
	}
	if settings.MaxBufferCapacity > 0 && settings.InitialBufferCapacity > settings.MaxBufferCapacity {
		conflicts = append(conflicts, "initial_buffer_capacity cannot exceed max_buffer_capacity")
	}
	if settings.MinScore < 0 || settings.MinScore > 100 {
		conflicts = append(conflicts, "min_score must be between 0 and 100")
	}

	return conflicts
}

// ApplyDefaults applies default values to the dataset settings
func (settings *DatasetSettings) ApplyDefaults() {
	if settings.MaxWordLength == 0 {
		settings.MaxWordLength = 1023
	}
	if settings.InitialBufferCapacity == 0 {
		settings.InitialBufferCapacity = 1000
	}
	// MaxBufferCapacity defaults to 0 (unbounded) and WorkerCount to 0
	// (all hardware threads); both zero values are meaningful as-is.
}
