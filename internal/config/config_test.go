package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "finnhub", cfg.Provider)
	require.Equal(t, "https://finnhub.io", cfg.FinnhubBaseURL)
	require.Equal(t, 3*time.Minute, cfg.RefreshInterval)
	require.Equal(t, 1500*time.Millisecond, cfg.RefreshDelay)
	require.Equal(t, 3*time.Minute, cfg.CacheTTL)
	require.True(t, cfg.RateLimitEnabled)
	require.Equal(t, 100, cfg.RateLimitMax)
	require.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	require.Equal(t, "memory", cfg.RateLimitBackend)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func Test_Load_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("QUOTE_PROVIDER", "fake")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("REFRESH_DELAY", "250ms")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "fake", cfg.Provider)
	require.Equal(t, time.Minute, cfg.RefreshInterval)
	require.Equal(t, 250*time.Millisecond, cfg.RefreshDelay)
	require.False(t, cfg.RateLimitEnabled)
	require.Equal(t, 5, cfg.RateLimitMax)
	require.Equal(t, "redis", cfg.RateLimitBackend)
	require.Equal(t, 2, cfg.RedisDB)
}
