// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/render"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // API key for authenticated endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar engine
	Drift    float64 // default anchor offset in seconds
	EraStyle string  // plain, dotted
	MinYear  int     // normalizer floors
	MinMonth int
	MinDay   int
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/rawtime.db")

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Calendar engine
	cfg.Drift = getEnvFloat("DRIFT", 0)
	cfg.EraStyle = getEnv("ERA_STYLE", string(render.Plain))
	cfg.MinYear = getEnvInt("MIN_YEAR", 1)
	cfg.MinMonth = getEnvInt("MIN_MONTH", 1)
	cfg.MinDay = getEnvInt("MIN_DAY", 1)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if math.IsNaN(c.Drift) || math.IsInf(c.Drift, 0) {
		errs = append(errs, fmt.Errorf("DRIFT must be a finite number of seconds, got %v", c.Drift))
	}

	if !render.Style(c.EraStyle).Valid() {
		errs = append(errs, fmt.Errorf("ERA_STYLE must be one of: plain, dotted; got %q", c.EraStyle))
	}

	if c.MinYear < 0 {
		errs = append(errs, fmt.Errorf("MIN_YEAR must not be negative, got %d", c.MinYear))
	}
	if c.MinMonth < 1 || c.MinMonth > 12 {
		errs = append(errs, fmt.Errorf("MIN_MONTH must be between 1 and 12, got %d", c.MinMonth))
	}
	if c.MinDay < 1 || c.MinDay > 28 {
		errs = append(errs, fmt.Errorf("MIN_DAY must be between 1 and 28, got %d", c.MinDay))
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

// Floors returns the normalizer floors.
func (c *Config) Floors() calendar.Floors {
	return calendar.Floors{Year: c.MinYear, Month: c.MinMonth, Day: c.MinDay}
}

// Style returns the era label style.
func (c *Config) Style() render.Style {
	return render.Style(c.EraStyle)
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
