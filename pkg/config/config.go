// Package config handles configuration for otpkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the retrieval configuration (otpkit.yaml).
// Values are layered: built-in defaults, then the config file, then
// OTPKIT_* environment variables.
type Config struct {
	// Mailbox settings
	MailboxURL string `yaml:"mailboxUrl" env:"OTPKIT_MAILBOX_URL"` // Mailbox API base URL
	FetchLimit int    `yaml:"fetchLimit" env:"OTPKIT_FETCH_LIMIT"` // Messages per poll

	// Retry settings
	MaxAttempts      int           `yaml:"maxAttempts" env:"OTPKIT_MAX_ATTEMPTS"`           // Phone-filtered attempts
	FallbackAttempts int           `yaml:"fallbackAttempts" env:"OTPKIT_FALLBACK_ATTEMPTS"` // Unfiltered attempts
	RetryDelay       time.Duration `yaml:"retryDelay" env:"OTPKIT_RETRY_DELAY"`             // Pause between attempts

	// Logging
	LogLevel  string `yaml:"logLevel" env:"OTPKIT_LOG_LEVEL"`   // debug, info, warn, error
	LogFormat string `yaml:"logFormat" env:"OTPKIT_LOG_FORMAT"` // "json" or "text"
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		FetchLimit:       50,
		MaxAttempts:      10,
		FallbackAttempts: 5,
		RetryDelay:       3 * time.Second,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load loads configuration from a file, then applies environment
// variable overrides. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir looks for otpkit.yaml or otpkit.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try otpkit.yaml first
	configPath := filepath.Join(dir, "otpkit.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try otpkit.yml
	configPath = filepath.Join(dir, "otpkit.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, defaults plus environment only
	return Load("")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.FetchLimit <= 0 {
		return fmt.Errorf("fetchLimit must be positive, got %d", c.FetchLimit)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("maxAttempts must be positive, got %d", c.MaxAttempts)
	}
	if c.FallbackAttempts <= 0 {
		return fmt.Errorf("fallbackAttempts must be positive, got %d", c.FallbackAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retryDelay must not be negative, got %s", c.RetryDelay)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("logFormat must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}
