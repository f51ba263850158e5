package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Upstream UpstreamConfig `yaml:"upstream" json:"upstream" jsonschema:"description=Upstream lectures API"`
	Refresh  RefreshConfig  `yaml:"refresh" json:"refresh" jsonschema:"description=Cache refresh configuration"`
	Media    MediaConfig    `yaml:"media" json:"media" jsonschema:"description=Allowed media host and player"`
	Rewrites []Rewrite      `yaml:"rewrites" json:"rewrites" jsonschema:"description=Ordered case-insensitive text replacements, more specific keys first"`
	Site     SiteConfig     `yaml:"site" json:"site" jsonschema:"description=Rendered page settings"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:10000,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:10000,description=Public base URL used in the RSS feed"`
}

// UpstreamConfig holds the upstream API client settings
type UpstreamConfig struct {
	BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://api.rolexcoderz.live/Live/,description=Upstream API base URL"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per attempt request timeout"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Maximum attempts per feed"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Linear backoff step between attempts"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Lectures/1.0,description=User agent for upstream requests"`
}

// RefreshConfig holds refresh cycle settings
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=60s,description=Interval between refresh cycles"`
}

// MediaConfig holds the trusted media host and the external player
type MediaConfig struct {
	HostSuffix string `yaml:"host_suffix" json:"host_suffix" jsonschema:"default=cloudfront.net,description=Allowed host suffix for images and playback"`
	PlayerURL  string `yaml:"player_url" json:"player_url" jsonschema:"default=https://studysmarterx.netlify.app/player/,description=External player base URL"`
}

// Rewrite is a single text replacement
type Rewrite struct {
	From string `yaml:"from" json:"from" jsonschema:"required,description=Text to replace (case-insensitive)"`
	To   string `yaml:"to" json:"to" jsonschema:"description=Replacement text"`
}

// SiteConfig holds page rendering settings
type SiteConfig struct {
	Title        string `yaml:"title" json:"title" jsonschema:"default=Study Smarterz,description=Site title"`
	CommunityURL string `yaml:"community_url" json:"community_url" jsonschema:"description=Community channel link shown in the footer"`
}

// DefaultRewrites is the brand table used when none is configured
var DefaultRewrites = []Rewrite{
	{From: "rolexcoderz", To: "studysmarterz"},
	{From: "rolex", To: "study"},
	{From: "coderz", To: "smarter"},
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate checks configuration, used after CLI overrides are applied
func (c *Config) Validate() error {
	return validate(c)
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":10000"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:10000"
	}

	// upstream
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://api.rolexcoderz.live/Live/"
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 10 * time.Second
	}
	if cfg.Upstream.Retries == 0 {
		cfg.Upstream.Retries = 3
	}
	if cfg.Upstream.RetryDelay == 0 {
		cfg.Upstream.RetryDelay = time.Second
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "Lectures/1.0"
	}

	if cfg.Refresh.Interval == 0 {
		cfg.Refresh.Interval = 60 * time.Second
	}

	// media
	if cfg.Media.HostSuffix == "" {
		cfg.Media.HostSuffix = "cloudfront.net"
	}
	if cfg.Media.PlayerURL == "" {
		cfg.Media.PlayerURL = "https://studysmarterx.netlify.app/player/"
	}

	if cfg.Rewrites == nil {
		cfg.Rewrites = append([]Rewrite{}, DefaultRewrites...)
	}

	if cfg.Site.Title == "" {
		cfg.Site.Title = "Study Smarterz"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if err := checkAbsURL(cfg.Upstream.BaseURL); err != nil {
		return fmt.Errorf("upstream.base_url: %w", err)
	}
	if cfg.Upstream.Retries < 1 {
		return fmt.Errorf("upstream.retries must be at least 1")
	}
	if cfg.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	if cfg.Upstream.RetryDelay < 0 {
		return fmt.Errorf("upstream.retry_delay must be non-negative")
	}
	if cfg.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1 second")
	}
	if cfg.Media.HostSuffix == "" {
		return fmt.Errorf("media.host_suffix is required")
	}
	if err := checkAbsURL(cfg.Media.PlayerURL); err != nil {
		return fmt.Errorf("media.player_url: %w", err)
	}
	if err := VerifyRewrites(cfg.Rewrites); err != nil {
		return fmt.Errorf("rewrites: %w", err)
	}
	return nil
}

func checkAbsURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("parse %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) url", s)
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the complete configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
