package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresTokenOutsideTests(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("NATS_SERVERS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "")
	t.Setenv("DEBUG_PORT", "")
	t.Setenv("ROSTER_SYNC_INTERVAL", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 8899, cfg.DebugPort)
	assert.Equal(t, 6*time.Hour, cfg.RosterSyncInterval)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 60000, cfg.OTelExportIntervalMillis)
	assert.False(t, cfg.NATSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("DATABASE_NAME", "thumbnails")
	t.Setenv("NATS_SERVERS", "nats://nats:4222")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "5000")
	t.Setenv("DEBUG_PORT", "0")
	t.Setenv("ROSTER_SYNC_INTERVAL", "30m")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.DebugPort)
	assert.Equal(t, 30*time.Minute, cfg.RosterSyncInterval)

	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, 5000, cfg.OTelExportIntervalMillis)
	assert.True(t, cfg.NATSEnabled())
	assert.Equal(t, "postgres://localhost:5432/thumbnails?sslmode=disable", cfg.GetDatabaseURL())
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	testConfig := NewTestConfig()
	testConfig.GuildID = "42"
	SetTestConfig(testConfig)

	assert.Same(t, testConfig, Get())
	assert.Equal(t, "42", Get().GuildID)
}

func TestLoad_RejectsInvalidOperationsSettings(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")

	t.Setenv("DEBUG_PORT", "-1")
	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBUG_PORT")

	t.Setenv("DEBUG_PORT", "")
	t.Setenv("ROSTER_SYNC_INTERVAL", "hourly")
	_, err = load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_SYNC_INTERVAL")
}
