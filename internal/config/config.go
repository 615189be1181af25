// Package config loads the optional nutriplan config file. Everything in it
// has a sensible default; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`

	// Units selects the display unit system: "metric" or "imperial".
	Units string `yaml:"units"`

	// Pantry tuning.
	Pantry struct {
		// ExpiringDays is the look-ahead window for `pantry expiring`.
		ExpiringDays int `yaml:"expiring_days"`
	} `yaml:"pantry"`
}

// Load reads the config at path. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if cfg.Units != "metric" && cfg.Units != "imperial" {
		return nil, fmt.Errorf("invalid units %q (expected metric or imperial)", cfg.Units)
	}
	if cfg.Pantry.ExpiringDays <= 0 {
		cfg.Pantry.ExpiringDays = 7
	}

	return cfg, nil
}
