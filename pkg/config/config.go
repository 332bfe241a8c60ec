package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScraperConfig holds crawl settings for the target store.
type ScraperConfig struct {
	BaseURL         string        `yaml:"base_url"`
	MaxPages        int           `yaml:"max_pages"`
	OutputDir       string        `yaml:"output_dir"`
	Workers         string        `yaml:"workers"`
	Headless        bool          `yaml:"headless"`
	Timeout         time.Duration `yaml:"timeout"`
	Delay           time.Duration `yaml:"delay"`
	UserAgent       string        `yaml:"user_agent"`
	ViewportWidth   int           `yaml:"viewport_width"`
	ViewportHeight  int           `yaml:"viewport_height"`
	ProductMarker   string        `yaml:"product_marker"`
	IncludePatterns []string      `yaml:"include_patterns"`
	ExcludePatterns []string      `yaml:"exclude_patterns"`
}

// MediaConfig lists the file extensions collected from product pages, per media kind.
type MediaConfig struct {
	Images    []string `yaml:"images"`
	Videos    []string `yaml:"videos"`
	Documents []string `yaml:"documents"`
}

// CatalogConfig controls the SQLite product index. Path defaults to catalog.db
// inside the output directory.
type CatalogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the complete structure for the config.yml file.
type Config struct {
	Scraper    ScraperConfig `yaml:"scraper"`
	Categories []string      `yaml:"categories"`
	Media      MediaConfig   `yaml:"media"`
	Catalog    CatalogConfig `yaml:"catalog"`
	LogLevel   string        `yaml:"log_level"`
}

// Default returns the settings used for store.ui.com when no file overrides them.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:        "https://store.ui.com/us/",
			MaxPages:       100,
			OutputDir:      "output",
			Workers:        "3",
			Headless:       true,
			Timeout:        30 * time.Second,
			Delay:          time.Second,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			ProductMarker:  "/products/",
			IncludePatterns: []string{
				"/us/en",
				"/us/category/",
				"/us/collections/",
			},
			ExcludePatterns: []string{
				"/cart",
				"/account",
				"/login",
				"/checkout",
				"/search",
				"mailto:",
			},
		},
		Categories: []string{
			"Cloud Gateways",
			"Switching",
			"WiFi",
			"Camera Security",
			"Door Access",
			"Integrations",
			"Accessories",
			"Internet Backup",
			"Phones",
		},
		Media: MediaConfig{
			Images:    []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
			Videos:    []string{".mp4", ".webm", ".mov", ".avi"},
			Documents: []string{".pdf"},
		},
		Catalog:  CatalogConfig{Enabled: true},
		LogLevel: "info",
	}
}

// CatalogPath returns where the catalog lives, or "" when it is disabled.
func (c *Config) CatalogPath() string {
	if !c.Catalog.Enabled {
		return ""
	}
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return filepath.Join(c.Scraper.OutputDir, "catalog.db")
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the crawler cannot run with.
func (c *Config) Validate() error {
	switch {
	case !strings.HasPrefix(c.Scraper.BaseURL, "http://") && !strings.HasPrefix(c.Scraper.BaseURL, "https://"):
		return fmt.Errorf("scraper.base_url must be an http(s) URL, got %q", c.Scraper.BaseURL)
	case c.Scraper.MaxPages <= 0:
		return errors.New("scraper.max_pages must be positive")
	case strings.TrimSpace(c.Scraper.OutputDir) == "":
		return errors.New("scraper.output_dir is required")
	case c.Scraper.ProductMarker == "":
		return errors.New("scraper.product_marker is required")
	case c.Scraper.Timeout <= 0:
		return errors.New("scraper.timeout must be positive")
	case c.Scraper.Delay < 0:
		return errors.New("scraper.delay must not be negative")
	}
	return nil
}
