package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the folio configuration.
type Config struct {
	Site SiteConfig `yaml:"site"`
	API  APIConfig  `yaml:"api"`
	UI   UIConfig   `yaml:"ui"`
}

// SiteConfig holds the portfolio site settings.
type SiteConfig struct {
	URL string `yaml:"url"` // Site root URL, e.g. https://u.github.io/
}

// APIConfig holds hosting API settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`   // Hosting API base (default api.github.com)
	TimeoutMs int    `yaml:"timeout_ms"` // Per-request timeout
}

// UIConfig holds rendering settings.
type UIConfig struct {
	Theme   string `yaml:"theme"`   // auto, dark, or light
	Verbose bool   `yaml:"verbose"` // Print every pipeline phase
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.github.com",
			TimeoutMs: 10000,
		},
		UI: UIConfig{Theme: "auto"},
	}
}

// Load reads the configuration file from the default path, applying
// defaults for anything unset. A missing file is not an error. The
// FOLIO_SITE environment variable overrides site.url.
func Load() (*Config, error) {
	return LoadFrom(DefaultPaths().ConfigFile())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if site := os.Getenv("FOLIO_SITE"); site != "" {
		cfg.Site.URL = site
	}
	return cfg, nil
}

// Save writes the configuration to the given paths' config file.
func (c *Config) Save(paths *Paths) error {
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(paths.ConfigFile(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ListKeys returns all configuration keys in sorted order.
func ListKeys() []string {
	keys := []string{
		"site.url",
		"api.base_url",
		"api.timeout_ms",
		"ui.theme",
		"ui.verbose",
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "site.url":
		return c.Site.URL, nil
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_ms":
		return strconv.Itoa(c.API.TimeoutMs), nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.verbose":
		return strconv.FormatBool(c.UI.Verbose), nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}

// Set updates a configuration key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "site.url":
		c.Site.URL = value
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		c.API.TimeoutMs = n
	case "ui.theme":
		switch value {
		case "auto", "dark", "light":
			c.UI.Theme = value
		default:
			return fmt.Errorf("ui.theme must be auto, dark, or light")
		}
	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		c.UI.Verbose = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
