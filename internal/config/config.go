package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the toolfind configuration file.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Search  SearchConfig  `toml:"search"`
	History HistoryConfig `toml:"history"`
	Popular PopularConfig `toml:"popular"`
	Storage StorageConfig `toml:"storage"`
	Site    SiteConfig    `toml:"site"`
	Log     LogConfig     `toml:"log"`
}

type CatalogConfig struct {
	// Path to a JSON catalog; empty uses the bundled catalog.
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type SearchConfig struct {
	MaxResults int     `toml:"max_results"`
	Threshold  float64 `toml:"threshold"`
	Debounce   string  `toml:"debounce"`
}

type HistoryConfig struct {
	Capacity int  `toml:"capacity"`
	Display  int  `toml:"display"`
	Persist  bool `toml:"persist"`
}

type PopularConfig struct {
	Count   int `toml:"count"`
	Display int `toml:"display"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type SiteConfig struct {
	BaseURL string `toml:"base_url"`
}

type LogConfig struct {
	File string `toml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{Watch: true},
		Search: SearchConfig{
			MaxResults: 8,
			Threshold:  0.4,
			Debounce:   "0s",
		},
		History: HistoryConfig{Capacity: 10, Display: 5, Persist: true},
		Popular: PopularConfig{Count: 6, Display: 4},
		Site:    SiteConfig{BaseURL: "/tool/"},
	}
}

// DefaultPath is ~/.config/toolfind/config.toml, or ./config.toml when no
// config directory can be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "toolfind", "config.toml")
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.Normalize()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = def.Search.MaxResults
	}
	if c.Search.Threshold <= 0 || c.Search.Threshold > 1 {
		c.Search.Threshold = def.Search.Threshold
	}
	if d, err := time.ParseDuration(c.Search.Debounce); err != nil || d < 0 {
		c.Search.Debounce = def.Search.Debounce
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = def.History.Capacity
	}
	if c.History.Display <= 0 || c.History.Display > c.History.Capacity {
		c.History.Display = min(def.History.Display, c.History.Capacity)
	}
	if c.Popular.Count <= 0 {
		c.Popular.Count = def.Popular.Count
	}
	if c.Popular.Display <= 0 || c.Popular.Display > c.Popular.Count {
		c.Popular.Display = min(def.Popular.Display, c.Popular.Count)
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = def.Site.BaseURL
	}
}

// DebounceDuration is the parsed search.debounce value.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Search.Debounce)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ToolURL builds the navigation target for a tool slug.
func (c *Config) ToolURL(slug string) string {
	return c.Site.BaseURL + slug
}
