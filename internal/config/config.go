// Package config defines the tabulator configuration and how it is loaded.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/allocscore/internal/domain/allocation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// MaxScore is the top of the score scale when an election does not set one.
	MaxScore float64 `koanf:"max_score"`

	// Seats is used when neither the election nor the command line sets it.
	Seats int `koanf:"seats"`

	// SplitBasis orders ballots when locating the split point: score or weighted.
	SplitBasis string `koanf:"split_basis"`

	// Tolerance is subtracted from the quota in the split point comparison.
	Tolerance float64 `koanf:"tolerance"`

	// ReportFormat selects the report encoding: text or json.
	ReportFormat string `koanf:"report_format"`

	// ShowRounds adds the per-round trace to reports.
	ShowRounds bool `koanf:"show_rounds"`

	// MetricsFile, when set, receives Prometheus metrics in textfile format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		MaxScore:     5,
		Seats:        0,
		SplitBasis:   allocation.SplitByScore.String(),
		Tolerance:    allocation.DefaultTolerance,
		ReportFormat: "text",
	}
}

// Validate checks enumerations and numeric ranges.
func (c *Config) Validate() error {
	if c.MaxScore <= 0 {
		return fmt.Errorf("%w: max_score must be positive, got %v", ErrInvalidConfig, c.MaxScore)
	}
	if c.Seats < 0 {
		return fmt.Errorf("%w: seats must not be negative, got %d", ErrInvalidConfig, c.Seats)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %v", ErrInvalidConfig, c.Tolerance)
	}
	if _, err := allocation.ParseSplitBasis(c.SplitBasis); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.ReportFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: report_format must be text or json, got %q", ErrInvalidConfig, c.ReportFormat)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
