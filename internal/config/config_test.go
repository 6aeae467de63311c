package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NOTES_STORE", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "notes", cfg.RedisPrefix)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout())
	assert.Empty(t, cfg.Origins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOTES_ENV", "production")
	t.Setenv("NOTES_HTTP_ADDR", ":9000")
	t.Setenv("NOTES_LOG_LEVEL", "DEBUG")
	t.Setenv("NOTES_STORE", "dynamodb")
	t.Setenv("NOTES_TABLE_NOTES", "notes-prod")
	t.Setenv("NOTES_TABLE_USERS", "users-prod")
	t.Setenv("NOTES_CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("NOTES_CORS_ALLOW_CREDENTIALS", "true")
	t.Setenv("NOTES_SHUTDOWN_TIMEOUT", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.Development())
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreDynamoDB, cfg.Store)
	assert.Equal(t, "notes-prod", cfg.TableNotes)
	assert.Equal(t, "users-prod", cfg.TableUsers)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins())
	assert.True(t, cfg.CORSAllowCredentials)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout())
}

func TestLoadRejectsIncompleteBackends(t *testing.T) {
	tests := map[string]map[string]string{
		"postgres without url":    {"NOTES_STORE": "postgres"},
		"redis without address":   {"NOTES_STORE": "redis"},
		"dynamodb without tables": {"NOTES_STORE": "dynamodb"},
		"unknown store":           {"NOTES_STORE": "sqlite"},
		"bad log level":           {"NOTES_LOG_LEVEL": "loud"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
