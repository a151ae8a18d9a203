package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GEOSEARCH_DATASET", "GEOSEARCH_SQLITE_PATH", "DATABASE_URL", "GEOSEARCH_LANGUAGE",
		"API_HOST", "API_PORT", "LOG_LEVEL", "GEOSEARCH_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cities.json", cfg.DatasetPath)
	assert.Empty(t, cfg.SQLitePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, language.English, cfg.Language)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEOSEARCH_DATASET", "/data/cities.json.bz2")
	t.Setenv("GEOSEARCH_SQLITE_PATH", "/data/cities.db")
	t.Setenv("GEOSEARCH_LANGUAGE", "fr")
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEOSEARCH_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/cities.json.bz2", cfg.DatasetPath)
	assert.Equal(t, "/data/cities.db", cfg.SQLitePath)
	assert.Equal(t, language.French, cfg.Language)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"GEOSEARCH_LANGUAGE", "not a language!"},
		{"GEOSEARCH_SHUTDOWN_TIMEOUT", "soon"},
		{"API_PORT", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
