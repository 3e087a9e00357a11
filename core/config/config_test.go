package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Steam", cfg.Sync.Platform)
	assert.Equal(t, "https://api.notion.com", cfg.Store.BaseURL)
	assert.Equal(t, "2022-06-28", cfg.Store.Version)
	assert.Equal(t, 4, cfg.Transport.MaxRetries)
	assert.Equal(t, 6, cfg.Sync.MinPlaytimeMinutes)
	assert.Equal(t, 360, cfg.Sync.IdlePlaytimeMinutes)
	assert.Equal(t, 7, cfg.Sync.IdleWindowDays)
	assert.True(t, cfg.Sync.EnableUpdate)
	assert.False(t, cfg.Sync.EnableFilter)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SYNC_ENABLE_FILTER", "true")
	t.Setenv("NOTION_GAMES_DATABASE_ID", "db-123")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Sync.EnableFilter)
	assert.Equal(t, "db-123", cfg.Store.GamesDatabaseID)
}

func TestValidate_ReportsAllMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steam.api_key")
	assert.Contains(t, err.Error(), "steam.user_id")
	assert.Contains(t, err.Error(), "notion.token")
	assert.Contains(t, err.Error(), "notion.games_database_id")
}

func TestValidate_Complete(t *testing.T) {
	cfg := &Config{}
	cfg.Steam.APIKey = "k"
	cfg.Steam.UserID = "u"
	cfg.Store.Token = "t"
	cfg.Store.GamesDatabaseID = "db"
	assert.NoError(t, cfg.Validate())
}
