package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "shared-key")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "shared-key", cfg.Instagram.APIKey)
	assert.Equal(t, "shared-key", cfg.WhatsApp.APIKey)
	assert.Equal(t, "instagram120.p.rapidapi.com", cfg.Instagram.Host)
	assert.Equal(t, 100, cfg.Cache.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ProfileTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PhotoTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INSTAGRAM_API_KEY", "ig")
	t.Setenv("WHATSAPP_API_KEY", "wa")
	t.Setenv("CACHE_PHOTO_TTL", "30s")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("CACHE_CAPACITY", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ig", cfg.Instagram.APIKey)
	assert.Equal(t, "wa", cfg.WhatsApp.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Cache.PhotoTTL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.Cache.Capacity)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Cache: CacheConfig{Capacity: 0, ProfileTTL: time.Minute, PhotoTTL: time.Minute},
		Log:   LogConfig{Format: "yaml"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INSTAGRAM_API_KEY")
	assert.Contains(t, err.Error(), "WHATSAPP_API_KEY")
	assert.Contains(t, err.Error(), "CACHE_CAPACITY")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
