// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by all commands.
type Config struct {
	DataDir   string
	Format    string
	LogLevel  string
	LogFormat string
}

// Load reads CYCLECARE_ENV_FILE if set, otherwise .env from the working
// directory if present, then the CYCLECARE_* environment variables.
// Variables already set in the environment win over file entries.
func Load() (*Config, error) {
	if path := os.Getenv("CYCLECARE_ENV_FILE"); path != "" {
		return LoadFile(path)
	}
	// A missing .env is normal; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		DataDir:   getEnvOrDefault("CYCLECARE_DATA_DIR", "data/assessments"),
		Format:    getEnvOrDefault("CYCLECARE_FORMAT", "json"),
		LogLevel:  getEnvOrDefault("CYCLECARE_LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("CYCLECARE_LOG_FORMAT", "text"),
	}
}

// LoadFile applies a specific env file before reading the environment.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("config.LoadFile: %w", err)
	}
	return FromEnv(), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
