// Package server exposes the prayer-time engine over HTTP as a small
// JSON API.
package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Default location used when a request carries no coordinates.
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultTimezone  string // IANA name
	DefaultMethod    string // calculation method preset name

	// Cache
	CacheDir string // schedule cache directory, empty disables caching

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, console
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// LoadConfig reads configuration from environment variables.
// In development, it first loads from .env file if present.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is a no-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Default location
	cfg.DefaultLatitude = getEnvFloat("DEFAULT_LATITUDE", 0)
	cfg.DefaultLongitude = getEnvFloat("DEFAULT_LONGITUDE", 0)
	cfg.DefaultTimezone = getEnv("DEFAULT_TIMEZONE", "")
	cfg.DefaultMethod = getEnv("DEFAULT_METHOD", "MWL")

	// Cache
	cfg.CacheDir = getEnv("CACHE_DIR", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 {
		errs = append(errs, fmt.Errorf("DEFAULT_LATITUDE must be between -90 and 90, got %v", c.DefaultLatitude))
	}
	if c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		errs = append(errs, fmt.Errorf("DEFAULT_LONGITUDE must be between -180 and 180, got %v", c.DefaultLongitude))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
