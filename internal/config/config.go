// Package config loads the intake server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server configures the HTTP listener.
type Server struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// Catalog configures the upstream product catalog. An empty base URL selects
// the built-in static catalog.
type Catalog struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Sheets configures the spreadsheet-append backend.
type Sheets struct {
	Endpoint      string        `yaml:"endpoint"`
	SpreadsheetID string        `yaml:"spreadsheet_id"`
	Range         string        `yaml:"range"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Theme selects the visual theme applied to the rendered pages.
type Theme struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// Config is the full server configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Catalog Catalog `yaml:"catalog"`
	Sheets  Sheets  `yaml:"sheets"`
	Theme   Theme   `yaml:"theme"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: Server{
			Addr:     ":8080",
			BasePath: "/",
		},
		Catalog: Catalog{
			Timeout: 10 * time.Second,
		},
		Sheets: Sheets{
			Range:   "Orders!A:U",
			Timeout: 15 * time.Second,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.backfill()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) backfill() {
	defaults := Default()
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if strings.TrimSpace(c.Server.BasePath) == "" {
		c.Server.BasePath = defaults.Server.BasePath
	}
	if c.Catalog.Timeout <= 0 {
		c.Catalog.Timeout = defaults.Catalog.Timeout
	}
	if strings.TrimSpace(c.Sheets.Range) == "" {
		c.Sheets.Range = defaults.Sheets.Range
	}
	if c.Sheets.Timeout <= 0 {
		c.Sheets.Timeout = defaults.Sheets.Timeout
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Sheets.Endpoint) == "" {
		return fmt.Errorf("config: sheets.endpoint is required")
	}
	if strings.TrimSpace(c.Sheets.SpreadsheetID) == "" {
		return fmt.Errorf("config: sheets.spreadsheet_id is required")
	}
	return nil
}
