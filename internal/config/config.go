// Package config loads the YAML configuration consumed by the heron
// command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the top-level configuration file.
type Config struct {
	Model struct {
		Data  string `yaml:"data"`  // training-table path
		State string `yaml:"state"` // trained-parameter blob path
		Seed  uint64 `yaml:"seed"`  // sample-path generator seed, 0 = time-seeded
	} `yaml:"model"`
	Log struct {
		Level      string `yaml:"level"`       // zap level name, default "info"
		File       string `yaml:"file"`        // log file path; empty logs to stderr
		MaxSizeMB  int    `yaml:"max_size_mb"` // rotation threshold
		MaxBackups int    `yaml:"max_backups"` // rotated files kept
	} `yaml:"log"`
}

// Load reads and decodes the configuration at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Model.Data == "" {
		return nil, fmt.Errorf("config: model.data is required")
	}
	if cfg.Model.State == "" {
		return nil, fmt.Errorf("config: model.state is required")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 50
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	return &cfg, nil
}
