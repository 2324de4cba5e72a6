// Package config loads analysis settings from YAML. The limits act as
// a defensive bound on inference: the cycle guard already guarantees
// termination, the caps keep pathological trees from taking the
// analysis down with them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits bounds a single inference request.
type Limits struct {
	// MaxDepth caps recursive inference nesting. Zero means the default.
	MaxDepth int `yaml:"max_depth"`
	// MaxResults caps the number of candidate values one node may
	// produce. Zero means the default.
	MaxResults int `yaml:"max_results"`
}

// Config is the full analysis configuration.
type Config struct {
	Limits Limits `yaml:"limits"`
	// DisabledBrains lists registry entry names to deactivate.
	DisabledBrains []string `yaml:"disabled_brains"`
}

const (
	defaultMaxDepth   = 500
	defaultMaxResults = 128
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{Limits: Limits{MaxDepth: defaultMaxDepth, MaxResults: defaultMaxResults}}
}

// Parse reads a YAML configuration, filling unset limits with defaults.
func Parse(data []byte) (Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Limits.MaxDepth <= 0 {
		cfg.Limits.MaxDepth = defaultMaxDepth
	}
	if cfg.Limits.MaxResults <= 0 {
		cfg.Limits.MaxResults = defaultMaxResults
	}
	return cfg, nil
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}
