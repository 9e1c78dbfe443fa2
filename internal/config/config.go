// ABOUTME: Application configuration loaded from environment variables
// ABOUTME: Covers backend URL, request timeout, and config directory override

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIURL is the Epay backend base URL, without the /api/v1 prefix.
	APIURL string `env:"EPAY_API_URL" envDefault:"http://localhost:8080"`

	// RequestTimeout bounds every HTTP call issued by the client.
	RequestTimeout time.Duration `env:"EPAY_REQUEST_TIMEOUT" envDefault:"30s"`

	// ConfigDir overrides where session state and logs are stored.
	// Empty means the XDG default is used.
	ConfigDir string `env:"EPAY_CONFIG_DIR"`

	// Debug enables debug-level logging to the log file.
	Debug bool `env:"EPAY_DEBUG" envDefault:"false"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir()
	}
}

// DefaultConfigDir returns the config directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "epay")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "epay")
}
