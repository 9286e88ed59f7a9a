package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Database   DatabaseConfig `yaml:"database"`
	Imports    ImportsConfig  `yaml:"imports"`
	Advisor    AdvisorConfig  `yaml:"advisor"`
	Categories []string       `yaml:"categories"`
}

// DatabaseConfig holds the storage connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ImportsConfig controls the staged import workflow.
type ImportsConfig struct {
	// RetentionDays is how long a never-committed draft survives before the
	// reaper removes it. Zero disables the startup sweep.
	RetentionDays int `yaml:"retention_days"`
}

// AdvisorConfig controls the optional AI categorization advisor. The API key
// comes from the GEMINI_API_KEY environment variable, not from the file.
type AdvisorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// Retention returns the draft retention window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Imports.RetentionDays) * 24 * time.Hour
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(dsn string) *Config {
	return &Config{
		Database: DatabaseConfig{DSN: dsn},
		Imports: ImportsConfig{
			RetentionDays: 7,
		},
		Advisor: AdvisorConfig{
			Enabled: false,
			Model:   "gemini-1.5-flash",
		},
		Categories: []string{
			"Groceries",
			"Transportation",
			"Coffee",
			"Dining & Restaurants",
			"Shopping",
			"Home",
			"Cash Withdrawals",
			"Entertainment & Subscriptions",
			"Travelling",
			"Education & Studying",
			"Other",
			"Investments",
			"Income",
		},
	}
}
