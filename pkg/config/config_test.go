package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5*time.Second, cfg.Scraper.MinRequestDelay)
	assert.Equal(t, 10*time.Second, cfg.Scraper.FetchTimeout)
	assert.Equal(t, 5, cfg.Scraper.MaxRedirects)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Scraper.BaseURL)
	assert.NotEmpty(t, cfg.Scraper.UserAgent)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PROFILESCRAPER_BASE_URL", "https://profiles.example.com")
	t.Setenv("PROFILESCRAPER_MIN_REQUEST_DELAY", "2s")
	t.Setenv("PROFILESCRAPER_CACHE_TTL", "30m")
	t.Setenv("PROFILESCRAPER_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "https://profiles.example.com", cfg.Scraper.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Scraper.MinRequestDelay)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidDurations(t *testing.T) {
	t.Setenv("PROFILESCRAPER_MIN_REQUEST_DELAY", "not-a-duration")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 5*time.Second, cfg.Scraper.MinRequestDelay)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `scraper:
  base_url: https://profiles.example.com
  min_request_delay: 3s
cache:
  ttl: 1h
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "https://profiles.example.com", cfg.Scraper.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Scraper.MinRequestDelay)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Unset keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Scraper.FetchTimeout)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scraper: [not a map"), 0644))

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.Scraper.BaseURL = "" },
			wantErr: "base URL is required",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.Scraper.BaseURL = "not-a-url" },
			wantErr: "base URL must be an absolute URL",
		},
		{
			name:    "empty user agent",
			mutate:  func(c *Config) { c.Scraper.UserAgent = "" },
			wantErr: "user agent is required",
		},
		{
			name:    "non-positive delay",
			mutate:  func(c *Config) { c.Scraper.MinRequestDelay = 0 },
			wantErr: "minimum request delay must be positive",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Scraper.FetchTimeout = -time.Second },
			wantErr: "fetch timeout must be positive",
		},
		{
			name:    "negative redirects",
			mutate:  func(c *Config) { c.Scraper.MaxRedirects = -1 },
			wantErr: "max redirects cannot be negative",
		},
		{
			name:    "non-positive TTL",
			mutate:  func(c *Config) { c.Cache.TTL = 0 },
			wantErr: "cache TTL must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"base-url":  "https://profiles.example.com",
		"min-delay": 7 * time.Second,
		"cache-ttl": 45 * time.Minute,
		"log-level": "error",
	})

	assert.Equal(t, "https://profiles.example.com", cfg.Scraper.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Scraper.MinRequestDelay)
	assert.Equal(t, 45*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Scraper.MinRequestDelay = 9 * time.Second
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, 9*time.Second, reloaded.Scraper.MinRequestDelay)
}
