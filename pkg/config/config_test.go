package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 120*time.Second, c.Cache.TTL)
	assert.Equal(t, 8, c.Picks.Concurrency)
	assert.Equal(t, DefaultWatchlist, c.Picks.Watchlist)
	assert.Equal(t, 2, c.Providers.Price.MaxRetries)
	assert.False(t, c.Cache.DedupeInflight)
	assert.False(t, c.Kafka.AutoCreateTopic)
}

func TestParseKeepsExplicitValues(t *testing.T) {
	c, err := Parse([]byte(`
environment: prod
cache:
  ttl: 30s
  dedupe_inflight: true
picks:
  watchlist: [IBM, KO]
providers:
  price:
    base_url: https://prices.example
    api_key: secret
kafka:
  auto_create_topic: true
`))
	require.NoError(t, err)

	assert.True(t, c.Kafka.AutoCreateTopic)

	assert.Equal(t, 30*time.Second, c.Cache.TTL)
	assert.True(t, c.Cache.DedupeInflight)
	assert.Equal(t, []string{"IBM", "KO"}, c.Picks.Watchlist)
	// fundamentals share the price source when not configured separately
	assert.Equal(t, "https://prices.example", c.Providers.Fundamentals.BaseURL)
	assert.Equal(t, "secret", c.Providers.Fundamentals.APIKey)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("environment: test\npicks:\n  concurrency: -1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("environment: [broken"))
	require.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))

	t.Setenv("ALPHAVANTAGE_API_KEY", "from-env")
	t.Setenv("WATCHLIST", " aapl, msft ,,")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("CACHE_TTL", "45s")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Providers.Price.APIKey)
	assert.Equal(t, []string{"aapl", "msft"}, c.Picks.Watchlist)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache.internal", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, 45*time.Second, c.Cache.TTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
