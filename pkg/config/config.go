package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Env       string
	LogFormat string

	// Worker lifecycle configuration
	StaleHandlerTimeout time.Duration
	StaleCheckInterval  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 getEnv("ENV", "development"),
		LogFormat:           getEnv("LOG_FORMAT", ""),
		StaleHandlerTimeout: getEnvAsSeconds("STALE_HANDLER_TIMEOUT", 3600),
		StaleCheckInterval:  getEnvAsSeconds("STALE_CHECK_INTERVAL", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.StaleHandlerTimeout <= 0 {
		return fmt.Errorf("STALE_HANDLER_TIMEOUT must be positive")
	}

	if c.StaleCheckInterval <= 0 {
		return fmt.Errorf("STALE_CHECK_INTERVAL must be positive")
	}

	if c.StaleCheckInterval > c.StaleHandlerTimeout {
		return fmt.Errorf("STALE_CHECK_INTERVAL cannot exceed STALE_HANDLER_TIMEOUT")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsSeconds gets an environment variable holding a second count
// as a time.Duration with a default value
func getEnvAsSeconds(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
	}
	return time.Duration(defaultValue) * time.Second
}
