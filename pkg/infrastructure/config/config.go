package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings read from the environment and an optional .env file
type Config struct {
	Seed         uint32
	StepInterval time.Duration
	Currency     string
	LogLevel     string
	Port         string
	Environment  string
}

// Load reads .env files (when present) and then the environment.
// With no files given it looks for .env in the working directory.
func Load(files ...string) (*Config, error) {
	envLoaded := godotenv.Load(files...) == nil

	seed, err := getEnvUint32("QUALITYSIM_SEED", 42)
	if err != nil {
		return nil, err
	}

	interval, err := getEnvDuration("QUALITYSIM_STEP_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Seed:         seed,
		StepInterval: interval,
		Currency:     getEnv("QUALITYSIM_CURRENCY", "COP"),
		LogLevel:     getEnv("QUALITYSIM_LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
	}

	if !envLoaded && len(files) > 0 {
		return config, fmt.Errorf("failed to load env files %v", files)
	}

	return config, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint32(key string, defaultValue uint32) (uint32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return uint32(parsed), nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return parsed, nil
}
