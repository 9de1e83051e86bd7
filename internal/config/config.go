// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"parking-cost/core/types"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog says where zone data comes from
	Catalog CatalogConfig `json:"catalog"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains dataset settings
type CatalogConfig struct {
	// Path is the local dataset file
	Path string `json:"path"`

	// Format is the dataset format (json, hcl). Empty means detect from the
	// file extension.
	Format string `json:"format,omitempty"`

	// RemoteURL is where `catalog update` downloads new datasets from
	RemoteURL string `json:"remote_url,omitempty"`

	// RefreshTimeoutSeconds bounds a single dataset download
	RefreshTimeoutSeconds int `json:"refresh_timeout_seconds"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency prices are shown in
	Currency types.Currency `json:"currency"`

	// TimeZone is the IANA zone tariff windows and weekdays are read in
	TimeZone string `json:"time_zone"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Path:                  filepath.Join(homeDir, ".parking-cost", "zones.json"),
			RefreshTimeoutSeconds: 30,
		},
		Pricing: PricingConfig{
			Currency: types.CurrencyEUR,
			TimeZone: "Europe/Tallinn",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(errors.TypeConfig, err, "reading config %s", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "parsing config %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail later and less clearly
func (c *Config) Validate() error {
	switch c.Pricing.Currency {
	case types.CurrencyEUR, types.CurrencyUSD, types.CurrencyGBP:
	default:
		return errors.Newf(errors.TypeConfig, "unsupported currency %q", c.Pricing.Currency)
	}

	switch c.Catalog.Format {
	case "", "json", "hcl":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported catalog format %q", c.Catalog.Format)
	}

	if c.Catalog.RefreshTimeoutSeconds < 0 {
		return errors.New(errors.TypeConfig, "refresh_timeout_seconds must not be negative")
	}

	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
