// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/certamen-io/certamen/internal/domain/crosseval"
)

// Weights configures the share each metric contributes to an overall
// score. The four shares must sum to 1.0.
type Weights struct {
	Quality   float64 `koanf:"quality"`
	Clarity   float64 `koanf:"clarity"`
	Relevance float64 `koanf:"relevance"`
	Accuracy  float64 `koanf:"accuracy"`
}

// Set converts the configured weights into the domain weight set.
func (w Weights) Set() crosseval.WeightSet {
	return crosseval.WeightSet{
		Quality:   w.Quality,
		Clarity:   w.Clarity,
		Relevance: w.Relevance,
		Accuracy:  w.Accuracy,
	}
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Weights sets the metric weighting for overall scores.
	Weights Weights `koanf:"weights"`

	// ArbiterBlend sets the aggregate share of the arbiter score, in [0,1].
	ArbiterBlend float64 `koanf:"arbiter_blend"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel: "info",
		Addr:     ":8080",
		Weights: Weights{
			Quality:   0.25,
			Clarity:   0.25,
			Relevance: 0.25,
			Accuracy:  0.25,
		},
		ArbiterBlend: 0.6,
	}
	return c
}
