// Package config holds all porenew configuration. A single Config struct
// is the source of truth, loaded from YAML with environment variable
// overrides applied on top; CLI flags override both in the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDomain is the Alma API gateway this tool talks to unless told
// otherwise.
const DefaultDomain = "api-ca.hosted.exlibrisgroup.com"

// Config holds all porenew configuration.
type Config struct {
	// Alma API access
	Alma AlmaConfig `yaml:"alma"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AlmaConfig configures access to the Alma REST API.
type AlmaConfig struct {
	Domain  string `yaml:"domain"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level     string `yaml:"level"` // debug, info, warn, error
	DebugMode bool   `yaml:"debug_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Alma: AlmaConfig{
			Domain:  DefaultDomain,
			Timeout: "90s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".porenew", "config.yaml")
}

// Load loads configuration from a YAML file, starting from defaults and
// applying environment overrides last. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ALMA_API_KEY"); key != "" {
		c.Alma.APIKey = key
	}
	if domain := os.Getenv("ALMA_API_DOMAIN"); domain != "" {
		c.Alma.Domain = domain
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Alma.APIKey == "" {
		return fmt.Errorf("alma API key is required (set --api-key, ALMA_API_KEY, or alma.api_key in config)")
	}
	if c.Alma.Domain == "" {
		return fmt.Errorf("alma API domain is required")
	}
	if c.Alma.Timeout != "" {
		if _, err := time.ParseDuration(c.Alma.Timeout); err != nil {
			return fmt.Errorf("invalid alma.timeout: %w", err)
		}
	}
	return nil
}

// RequestTimeout returns the configured per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Alma.Timeout)
	if err != nil || d <= 0 {
		return 90 * time.Second
	}
	return d
}
