package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty variables count as unset.
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.Search.SearchDefaultLimit)
	assert.Equal(t, 100, cfg.Search.SearchMaxLimit)
	assert.Equal(t, 10, cfg.Search.SuggestDefaultLimit)
	assert.Equal(t, 5, cfg.Search.SuggestPerTypeLimit)
	assert.Equal(t, 30*time.Second, cfg.SuggestCacheTTL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SEARCH_DEFAULT_LIMIT", "25")
	t.Setenv("SUGGEST_CACHE_TTL", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 25, cfg.Search.SearchDefaultLimit)
	assert.Equal(t, 5*time.Second, cfg.SuggestCacheTTL)
	assert.Equal(t, "postgres://content_user:secret@db:5432/content_db?sslmode=disable", cfg.PostgresURL())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
search:
  max_limit: 50
log:
  level: debug
`), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, 50, cfg.Search.SearchMaxLimit)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidLimits(t *testing.T) {
	t.Setenv("SEARCH_DEFAULT_LIMIT", "200")
	_, err := Load("")
	assert.Error(t, err)
}
