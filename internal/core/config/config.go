// Package config handles configuration loading and validation for gitwrap.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/gitwrap/internal/core/git"
	"github.com/hay-kot/gitwrap/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	GitPath string    `yaml:"git_path"`
	Debug   bool      `yaml:"debug"`
	Log     LogConfig `yaml:"log"`
	Theme   string    `yaml:"theme"`
}

// LogConfig holds defaults for commit log commands. Dates are always
// requested in git's iso format, which ParseLog expects.
type LogConfig struct {
	Count int `yaml:"count"` // default number of commits for "log"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: git.DefaultExecutable,
		Log: LogConfig{
			Count: 10,
		},
		Theme: styles.DefaultTheme,
	}
}

// Load reads configuration from the given path and validates it.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating, for
// callers that report validation problems themselves.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Log.Count == 0 {
		c.Log.Count = defaults.Log.Count
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("git_path cannot be empty")
	}

	if c.Log.Count < 1 {
		return fmt.Errorf("log.count must be at least 1")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("theme %q is not one of %v", c.Theme, styles.ThemeNames())
	}

	return nil
}

// GitOptions returns the repository options derived from the configuration.
func (c *Config) GitOptions() git.Options {
	return git.Options{GitExecutable: c.GitPath}
}
