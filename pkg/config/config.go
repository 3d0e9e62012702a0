package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the profile acquisition pipeline
type Config struct {
	// Scraper settings (target host, headers, pacing)
	Scraper ScraperConfig `yaml:"scraper" json:"scraper"`

	// Cache settings
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScraperConfig holds settings for the outbound fetch channel
type ScraperConfig struct {
	BaseURL         string        `yaml:"base_url" json:"base_url"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent"`
	MinRequestDelay time.Duration `yaml:"min_request_delay" json:"min_request_delay"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
	MaxRedirects    int           `yaml:"max_redirects" json:"max_redirects"`
}

// CacheConfig holds settings for the in-memory profile cache
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" json:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UnmarshalYAML decodes a scraper section, accepting human-readable
// duration strings ("5s", "2h") for the delay and timeout fields. Keys
// absent from the document leave the existing values untouched.
func (c *ScraperConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL         string `yaml:"base_url"`
		UserAgent       string `yaml:"user_agent"`
		MinRequestDelay string `yaml:"min_request_delay"`
		FetchTimeout    string `yaml:"fetch_timeout"`
		MaxRedirects    *int   `yaml:"max_redirects"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.BaseURL != "" {
		c.BaseURL = raw.BaseURL
	}
	if raw.UserAgent != "" {
		c.UserAgent = raw.UserAgent
	}
	if raw.MinRequestDelay != "" {
		d, err := time.ParseDuration(raw.MinRequestDelay)
		if err != nil {
			return fmt.Errorf("invalid min_request_delay: %w", err)
		}
		c.MinRequestDelay = d
	}
	if raw.FetchTimeout != "" {
		d, err := time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout: %w", err)
		}
		c.FetchTimeout = d
	}
	if raw.MaxRedirects != nil {
		c.MaxRedirects = *raw.MaxRedirects
	}

	return nil
}

// MarshalYAML emits durations as human-readable strings
func (c ScraperConfig) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"base_url":          c.BaseURL,
		"user_agent":        c.UserAgent,
		"min_request_delay": c.MinRequestDelay.String(),
		"fetch_timeout":     c.FetchTimeout.String(),
		"max_redirects":     c.MaxRedirects,
	}, nil
}

// UnmarshalYAML decodes a cache section, accepting duration strings for
// the TTL
func (c *CacheConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL string `yaml:"ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.TTL != "" {
		d, err := time.ParseDuration(raw.TTL)
		if err != nil {
			return fmt.Errorf("invalid ttl: %w", err)
		}
		c.TTL = d
	}

	return nil
}

// MarshalYAML emits the TTL as a human-readable string
func (c CacheConfig) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"ttl": c.TTL.String(),
	}, nil
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:         "https://www.instagram.com",
			UserAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			MinRequestDelay: 5 * time.Second,
			FetchTimeout:    10 * time.Second,
			MaxRedirects:    5,
		},
		Cache: CacheConfig{
			TTL: 2 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("PROFILESCRAPER_BASE_URL"); baseURL != "" {
		c.Scraper.BaseURL = baseURL
	}
	if userAgent := os.Getenv("PROFILESCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}
	if delay := os.Getenv("PROFILESCRAPER_MIN_REQUEST_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d > 0 {
			c.Scraper.MinRequestDelay = d
		}
	}
	if timeout := os.Getenv("PROFILESCRAPER_FETCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Scraper.FetchTimeout = d
		}
	}
	if redirects := os.Getenv("PROFILESCRAPER_MAX_REDIRECTS"); redirects != "" {
		var val int
		fmt.Sscanf(redirects, "%d", &val)
		if val > 0 {
			c.Scraper.MaxRedirects = val
		}
	}
	if ttl := os.Getenv("PROFILESCRAPER_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			c.Cache.TTL = d
		}
	}
	if logLevel := os.Getenv("PROFILESCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".profilescraper.yaml",
		".profilescraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "profilescraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "profilescraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".profilescraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".profilescraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Validate scraper settings
	if c.Scraper.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	} else if u, err := url.Parse(c.Scraper.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("base URL must be an absolute URL"))
	}
	if c.Scraper.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Scraper.MinRequestDelay <= 0 {
		errs = append(errs, errors.New("minimum request delay must be positive"))
	}
	if c.Scraper.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if c.Scraper.MaxRedirects < 0 {
		errs = append(errs, errors.New("max redirects cannot be negative"))
	}

	// Validate cache settings
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache TTL must be positive"))
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Scraper.BaseURL = baseURL
	}
	if delay, ok := flags["min-delay"].(time.Duration); ok && delay > 0 {
		c.Scraper.MinRequestDelay = delay
	}
	if ttl, ok := flags["cache-ttl"].(time.Duration); ok && ttl > 0 {
		c.Cache.TTL = ttl
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".profilescraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
