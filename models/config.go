// Package models defines the shared data structures: runtime configuration,
// page inputs, and the extracted entity records.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values come from config.yaml when the
// file exists, then environment variables, then CLI flags (flags win).
type Config struct {
	BaseURL     string `yaml:"base_url"`
	SitemapURL  string `yaml:"sitemap_url"`
	PeopleURL   string `yaml:"people_url"`
	DBPath      string `yaml:"db_path"`
	WorkerCount int    `yaml:"workers"`
	MaxRetries  int    `yaml:"max_retries"`
	UserAgent   string `yaml:"user_agent"`
	CacheDir    string `yaml:"cache_dir"`
	CacheTTL    string `yaml:"cache_ttl"`
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://www.ycombinator.com",
		SitemapURL:  "https://www.ycombinator.com/companies/sitemap",
		PeopleURL:   "https://www.ycombinator.com/people",
		DBPath:      "data/founderdex.db",
		WorkerCount: 4,
		MaxRetries:  3,
		UserAgent:   "founderdex/1.0",
		CacheDir:    "data/cache",
		CacheTTL:    "168h",
	}
}

// LoadConfig reads a YAML config file and applies environment overrides.
// A missing file is not an error; defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// ParsedCacheTTL parses the configured cache TTL duration.
func (c *Config) ParsedCacheTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	return d, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOUNDERDEX_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FOUNDERDEX_SITEMAP_URL"); v != "" {
		cfg.SitemapURL = v
	}
	if v := os.Getenv("FOUNDERDEX_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FOUNDERDEX_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("FOUNDERDEX_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
}
