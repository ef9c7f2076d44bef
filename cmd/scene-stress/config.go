package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls a stress run. All fields have defaults; a YAML file and
// command-line flags can override them.
type Config struct {
	Duration time.Duration `yaml:"-"`
	Entities int           `yaml:"entities"`
	Seed     uint64        `yaml:"seed"`
	Churn    ChurnConfig   `yaml:"churn"`

	// RawDuration holds the YAML form ("30s", "2m") parsed into Duration.
	RawDuration string `yaml:"duration"`
}

// ChurnConfig sets how many of each mutation run per simulated tick.
type ChurnConfig struct {
	SpawnsPerTick    int `yaml:"spawns_per_tick"`
	DestroysPerTick  int `yaml:"destroys_per_tick"`
	SetsPerTick      int `yaml:"sets_per_tick"`
	RemovesPerTick   int `yaml:"removes_per_tick"`
	ReparentsPerTick int `yaml:"reparents_per_tick"`
	RenamesPerTick   int `yaml:"renames_per_tick"`
	QueriesPerTick   int `yaml:"queries_per_tick"`
}

// DefaultConfig returns the run settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Second,
		Entities: 10000,
		Seed:     1,
		Churn: ChurnConfig{
			SpawnsPerTick:    20,
			DestroysPerTick:  15,
			SetsPerTick:      200,
			RemovesPerTick:   100,
			ReparentsPerTick: 50,
			RenamesPerTick:   25,
			QueriesPerTick:   10,
		},
	}
}

// LoadConfig reads run settings from a YAML file, starting from defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.RawDuration != "" {
		d, err := time.ParseDuration(cfg.RawDuration)
		if err != nil {
			return cfg, fmt.Errorf("parse duration %q: %w", cfg.RawDuration, err)
		}
		cfg.Duration = d
	}
	return cfg, nil
}
