// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and CIRCLE_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// MinPoints is the largest stroke length that scores the fallback 0.
	MinPoints int `koanf:"min_points"`

	// SampleTarget is the point count below which scores ramp down linearly.
	SampleTarget int `koanf:"sample_target"`

	// ClosureRatio is the first-to-last gap, as a fraction of the average
	// radius, above which ClosurePenalty applies.
	ClosureRatio float64 `koanf:"closure_ratio"`

	// ClosurePenalty multiplies the score of strokes left open.
	ClosurePenalty float64 `koanf:"closure_penalty"`

	// QueueSize bounds the in-memory pointer event queue.
	QueueSize int `koanf:"queue_size"`

	// HistorySize bounds the attempt history; 0 keeps every attempt.
	HistorySize int `koanf:"history_size"`

	// MetricsTextfile, when set, receives a metrics dump on exit.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// CanvasWidth and CanvasHeight size the synthetic strokes.
	CanvasWidth  float64 `koanf:"canvas_width"`
	CanvasHeight float64 `koanf:"canvas_height"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		MinPoints:      10,
		SampleTarget:   50,
		ClosureRatio:   0.2,
		ClosurePenalty: 0.8,
		QueueSize:      1024,
		HistorySize:    100,
		CanvasWidth:    500,
		CanvasHeight:   500,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.MinPoints < 0:
		return invalid("min_points must not be negative")
	case c.SampleTarget <= 0:
		return invalid("sample_target must be positive")
	case c.ClosureRatio < 0:
		return invalid("closure_ratio must not be negative")
	case c.ClosurePenalty < 0 || c.ClosurePenalty > 1:
		return invalid("closure_penalty must be within [0, 1]")
	case c.QueueSize <= 0:
		return invalid("queue_size must be positive")
	case c.HistorySize < 0:
		return invalid("history_size must not be negative")
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return invalid("canvas size must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return invalid("log_format must be text or json")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
