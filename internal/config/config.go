// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Config holds application configuration
type Config struct {
	DatasetPath     string // JSON dataset, optionally .gz/.bz2
	SQLitePath      string // imported catalog; preferred over DatasetPath when set
	DatabaseURL     string // Postgres source; preferred over both when set
	Language        language.Tag
	APIHost         string
	APIPort         string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatasetPath: getEnv("GEOSEARCH_DATASET", "cities.json"),
		SQLitePath:  getEnv("GEOSEARCH_SQLITE_PATH", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		APIPort:     getEnv("API_PORT", "8080"),
		APIHost:     getEnv("API_HOST", "0.0.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	lang := getEnv("GEOSEARCH_LANGUAGE", "en")
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOSEARCH_LANGUAGE %q: %w", lang, err)
	}
	cfg.Language = tag

	timeout, err := getEnvDuration("GEOSEARCH_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = timeout

	if _, err := strconv.Atoi(cfg.APIPort); err != nil {
		return nil, fmt.Errorf("invalid API_PORT %q: %w", cfg.APIPort, err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP API listens on.
func (c *Config) Addr() string {
	return c.APIHost + ":" + c.APIPort
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
