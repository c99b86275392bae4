// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default "warn").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json" (default "console").
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HistoryConfig holds settings for the export history database.
type HistoryConfig struct {
	// Enabled controls whether export runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database path. Empty means
	// <vault>/.image-collector/history.db.
	DBPath string `json:"db" yaml:"db" mapstructure:"db"`
}

// ReportFormat selects how an export report is rendered.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportYAML ReportFormat = "yaml"
	ReportJSON ReportFormat = "json"
)

// CollectorConfig groups all settings for the image collector.
type CollectorConfig struct {
	// VaultDir is the root directory of the note vault.
	VaultDir string `json:"vault" yaml:"vault" mapstructure:"vault"`

	// Overwrite replaces existing files in the target folder instead of
	// failing the copy.
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`

	// Report selects the per-document report format printed after export.
	// Empty prints nothing beyond notifications.
	Report ReportFormat `json:"report" yaml:"report" mapstructure:"report"`

	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
