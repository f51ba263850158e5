package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

upstream:
  base_url: https://api.example.com/Live/
  timeout: 5s
  retries: 4
  retry_delay: 500ms

refresh:
  interval: 2m

media:
  host_suffix: cdn.example.net
  player_url: https://player.example.com/watch/

rewrites:
  - from: acme
    to: brand

site:
  title: Lectures
  community_url: https://t.me/lectures
`
		configPath := writeConfig(t, configContent)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://api.example.com/Live/", cfg.Upstream.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
		assert.Equal(t, 4, cfg.Upstream.Retries)
		assert.Equal(t, 500*time.Millisecond, cfg.Upstream.RetryDelay)
		assert.Equal(t, 2*time.Minute, cfg.Refresh.Interval)
		assert.Equal(t, "cdn.example.net", cfg.Media.HostSuffix)
		assert.Equal(t, "https://player.example.com/watch/", cfg.Media.PlayerURL)
		assert.Equal(t, []Rewrite{{From: "acme", To: "brand"}}, cfg.Rewrites)
		assert.Equal(t, "Lectures", cfg.Site.Title)
		assert.Equal(t, "https://t.me/lectures", cfg.Site.CommunityURL)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, "site:\n  title: Test\n")

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, ":10000", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://api.rolexcoderz.live/Live/", cfg.Upstream.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
		assert.Equal(t, 3, cfg.Upstream.Retries)
		assert.Equal(t, time.Second, cfg.Upstream.RetryDelay)
		assert.Equal(t, 60*time.Second, cfg.Refresh.Interval)
		assert.Equal(t, "cloudfront.net", cfg.Media.HostSuffix)
		assert.Equal(t, "https://studysmarterx.netlify.app/player/", cfg.Media.PlayerURL)
		assert.Equal(t, DefaultRewrites, cfg.Rewrites)
		assert.Equal(t, "Test", cfg.Site.Title)
	})

	t.Run("empty rewrites disable replacement", func(t *testing.T) {
		configPath := writeConfig(t, "rewrites: []\n")
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Empty(t, cfg.Rewrites)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_UPSTREAM", "https://env.example.com/api/")
		configPath := writeConfig(t, "upstream:\n  base_url: ${TEST_UPSTREAM}\n")
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/api/", cfg.Upstream.BaseURL)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "upstream:\n  base_url: not-a-url\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "upstream.base_url")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":10000", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Same(t, cfg, cfg.GetFullConfig())

	// default table must not be shared with callers
	cfg.Rewrites[0].To = "changed"
	assert.Equal(t, "studysmarterz", DefaultRewrites[0].To)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond }, errMsg: "server timeout"},
		{name: "retries", modify: func(c *Config) { c.Upstream.Retries = -1 }, errMsg: "upstream.retries"},
		{name: "upstream timeout", modify: func(c *Config) { c.Upstream.Timeout = -time.Second }, errMsg: "upstream.timeout"},
		{name: "retry delay", modify: func(c *Config) { c.Upstream.RetryDelay = -time.Second }, errMsg: "upstream.retry_delay"},
		{name: "interval", modify: func(c *Config) { c.Refresh.Interval = 10 * time.Millisecond }, errMsg: "refresh.interval"},
		{name: "host suffix", modify: func(c *Config) { c.Media.HostSuffix = "" }, errMsg: "media.host_suffix"},
		{name: "player url", modify: func(c *Config) { c.Media.PlayerURL = "/player" }, errMsg: "media.player_url"},
		{name: "ftp upstream", modify: func(c *Config) { c.Upstream.BaseURL = "ftp://example.com/" }, errMsg: "upstream.base_url"},
		{name: "shadowed rewrite", modify: func(c *Config) {
			c.Rewrites = []Rewrite{{From: "rolex", To: "study"}, {From: "rolexcoderz", To: "studysmarterz"}}
		}, errMsg: "shadows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}
