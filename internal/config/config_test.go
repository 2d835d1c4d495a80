package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEAMBOARD_API_URL", "")
	t.Setenv("TEAMBOARD_HTTP_TIMEOUT", "")
	t.Setenv("TEAMBOARD_LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEAMBOARD_API_URL", "https://board.example.com/api")
	t.Setenv("TEAMBOARD_HTTP_TIMEOUT", "30")
	t.Setenv("TEAMBOARD_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "https://board.example.com/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("TEAMBOARD_HTTP_TIMEOUT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}
