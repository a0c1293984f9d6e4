// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting for the server. Values come from the
// environment (optionally primed from a .env file by the caller).
type Config struct {
	// HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Database
	DBPath string `env:"DB_PATH" envDefault:"./data/splitpal.db"`

	// Auth
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`
}

// Load parses the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values env tags cannot express.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("invalid token duration %s: must be positive", c.TokenDuration)
	}
	return nil
}
