package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.MaxResults != 8 {
		t.Errorf("MaxResults = %d, want 8", cfg.Search.MaxResults)
	}
	if cfg.Search.Threshold != 0.4 {
		t.Errorf("Threshold = %v, want 0.4", cfg.Search.Threshold)
	}
	if cfg.History.Capacity != 10 || cfg.History.Display != 5 {
		t.Errorf("History = %+v, want capacity 10 display 5", cfg.History)
	}
	if cfg.Popular.Count != 6 || cfg.Popular.Display != 4 {
		t.Errorf("Popular = %+v, want count 6 display 4", cfg.Popular)
	}
	if cfg.DebounceDuration() != 0 {
		t.Errorf("DebounceDuration() = %v, want 0", cfg.DebounceDuration())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[catalog]
path = "/srv/catalog.json"

[search]
max_results = 5
debounce = "150ms"

[history]
capacity = 3
display = 9

[site]
base_url = "https://tools.example.com/tool/"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Catalog.Path != "/srv/catalog.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", cfg.Search.MaxResults)
	}
	if cfg.Search.Threshold != 0.4 {
		t.Errorf("Threshold = %v, want default 0.4", cfg.Search.Threshold)
	}
	if cfg.DebounceDuration() != 150*time.Millisecond {
		t.Errorf("DebounceDuration() = %v, want 150ms", cfg.DebounceDuration())
	}
	if cfg.History.Display != 3 {
		t.Errorf("History.Display = %d, want it clamped to capacity 3", cfg.History.Display)
	}
	if got := cfg.ToolURL("css-minifier"); got != "https://tools.example.com/tool/css-minifier" {
		t.Errorf("ToolURL() = %s", got)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[search\nmax_results = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid TOML should fail")
	}
}

func TestNormalize(t *testing.T) {
	cfg := &Config{
		Search: SearchConfig{MaxResults: -1, Threshold: 7, Debounce: "soon"},
	}
	cfg.Normalize()

	if cfg.Search.MaxResults != 8 || cfg.Search.Threshold != 0.4 || cfg.Search.Debounce != "0s" {
		t.Errorf("Search = %+v, want defaults", cfg.Search)
	}
	if cfg.Site.BaseURL != "/tool/" {
		t.Errorf("BaseURL = %q, want /tool/", cfg.Site.BaseURL)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Storage.Path = "/tmp/toolfind.db"
	cfg.Search.MaxResults = 6

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Storage.Path != "/tmp/toolfind.db" || loaded.Search.MaxResults != 6 {
		t.Errorf("Load() = %+v", loaded)
	}
}
