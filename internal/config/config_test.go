package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlclient/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1000, cfg.Log.BufferCapacity)
	assert.Equal(t, 5, cfg.Form.MaxEntries)
	assert.True(t, cfg.Forward.Enabled)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://short.example.com/api")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_BUFFER_CAPACITY", "50")
	t.Setenv("FORM_MAX_ENTRIES", "3")
	t.Setenv("CACHE_STATS_TTL", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://short.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, 50, cfg.Log.BufferCapacity)
	assert.Equal(t, 3, cfg.Form.MaxEntries)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"base url not a url", "API_BASE_URL", "not a url"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"zero buffer capacity", "LOG_BUFFER_CAPACITY", "0"},
		{"form larger than five", "FORM_MAX_ENTRIES", "6"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"malformed duration", "API_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
