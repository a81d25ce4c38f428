package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_EnvDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	require.Equal(t, "https://hacker-news.firebaseio.com", cfg.Upstream.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, 500, cfg.Engine.SearchScanLimit)
	require.Equal(t, 0, cfg.Engine.MaxConcurrency)
	require.Equal(t, 10, cfg.Engine.DefaultPageSize)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("SEARCH_SCAN_LIMIT", "100")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.HTTP.Port)
	require.Equal(t, "redis", cfg.Cache.Backend)
	require.Equal(t, 100, cfg.Engine.SearchScanLimit)
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: prod
http:
  port: "8181"
upstream:
  user_agent: "custom-agent/2.0"
cache:
  ttl: 2m
engine:
  max_concurrency: 8
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "8181", cfg.HTTP.Port)
	require.Equal(t, "custom-agent/2.0", cfg.Upstream.UserAgent)
	require.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 8, cfg.Engine.MaxConcurrency)
	require.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	require.Equal(t, "https://hacker-news.firebaseio.com", cfg.Upstream.BaseURL)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: staging\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Env)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
