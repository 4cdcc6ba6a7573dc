package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort   string
	ServerHost   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database
	DataDir      string
	DatabaseFile string

	// Seed fixture (optional yaml path; empty means built-in sample data)
	SeedFile string

	// Initial UI preference, written to the preference store only when unset
	UseDemoData bool
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8090"),
		ServerHost:   getEnv("SERVER_HOST", "127.0.0.1"),
		ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),

		DataDir:      getEnv("EMR_DATA_DIR", defaultDataDir()),
		DatabaseFile: getEnv("EMR_DATABASE_FILE", "emr_database.db"),

		SeedFile: getEnv("EMR_SEED_FILE", ""),

		UseDemoData: getBoolEnv("EMR_USE_DEMO_DATA", false),
	}
}

// DatabasePath is the single on-disk database file the application owns.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "emr-desktop"
	}
	return filepath.Join(base, "emr-desktop")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
