// =============================================================================
// Ordemtex - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file and
// fills in defaults for anything the file leaves out. A missing file is
// not an error: the tool runs with pure defaults, which covers the common
// "drop an export on it" usage.
//
// Deliberately NOT configuration: the 10% quantity tolerance and the
// raw-loop family exemptions. Those are business rules of the planning
// sheet and live as literal constants next to the code that applies them.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls diagnostic verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// IMPORT SETTINGS
	// =========================================================================

	// MaxFileSizeMB is the upload size ceiling checked before parsing.
	// Default: 50
	MaxFileSizeMB int `yaml:"max_file_size_mb"`

	// ImportMode selects what a new import does to the in-memory
	// collection.
	// Valid values: "replace", "append"
	// Default: "replace"
	ImportMode string `yaml:"import_mode"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// ReportFormat is the default output format of the report commands.
	// Valid values: "text", "json"
	// Default: "text"
	ReportFormat string `yaml:"report_format"`

	// TimelineDays is the width, in days, of the timeline date grid.
	// Default: 30
	TimelineDays int `yaml:"timeline_days"`
}

// Load reads the configuration from path. A nonexistent path yields the
// defaults; a present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for any unset field.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MaxFileSizeMB == 0 {
		cfg.MaxFileSizeMB = 50
	}
	if cfg.ImportMode == "" {
		cfg.ImportMode = "replace"
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "text"
	}
	if cfg.TimelineDays == 0 {
		cfg.TimelineDays = 30
	}
}

// validate checks the configuration for values that cannot work.
func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	if cfg.MaxFileSizeMB < 0 {
		return fmt.Errorf("max_file_size_mb cannot be negative")
	}

	switch cfg.ImportMode {
	case "replace", "append":
	default:
		return fmt.Errorf("unknown import_mode %q", cfg.ImportMode)
	}

	switch cfg.ReportFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown report_format %q", cfg.ReportFormat)
	}

	if cfg.TimelineDays < 1 {
		return fmt.Errorf("timeline_days must be at least 1")
	}

	return nil
}
