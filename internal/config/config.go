package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendSession  = "session"
	BackendDatabase = "database"
)

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	CookieName string        `env:"COOKIE_NAME" envDefault:"todolist_session"`
	TTL        time.Duration `env:"TTL" envDefault:"24h"`
	Secure     bool          `env:"SECURE" envDefault:"false"`
}

// Config holds the process level configuration
type Config struct {
	Port    string        `env:"PORT" envDefault:"8080"`
	Backend string        `env:"STORAGE_BACKEND" envDefault:"session"`
	Session SessionConfig `envPrefix:"SESSION_"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// NewConfigFromEnv creates the application config from environment variables
func NewConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot express
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSession, BackendDatabase:
	default:
		return fmt.Errorf("unsupported storage backend %q (want %q or %q)", c.Backend, BackendSession, BackendDatabase)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	return nil
}

// UsesDatabase reports whether lists are kept in the relational backend
func (c *Config) UsesDatabase() bool {
	return c.Backend == BackendDatabase
}
