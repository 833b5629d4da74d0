package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 300, cfg.AvailabilityCacheTTL)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test:test@db:5432/rental_test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg := Load()

	assert.Equal(t, "postgres://test:test@db:5432/rental_test", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2, cfg.TokenTTLHours)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 24, cfg.TokenTTLHours)
}
