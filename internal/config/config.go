// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"shadecost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing-engine settings
	Pricing PricingConfig `json:"pricing"`

	// Store contains data-store settings
	Store StoreConfig `json:"store"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// DefaultCurrency is the ISO currency code used for quotes
	DefaultCurrency string `json:"default_currency"`

	// CurrencySymbol is the symbol prepended to formatted prices
	CurrencySymbol string `json:"currency_symbol"`

	// TreatmentMappingPath optionally overrides the built-in
	// treatment-to-grid compatibility table
	TreatmentMappingPath string `json:"treatment_mapping_path,omitempty"`
}

// StoreConfig contains data-store settings
type StoreConfig struct {
	// Backend selects the store implementation (memory, postgres)
	Backend string `json:"backend"`

	// CatalogPath is the JSON catalog file for the memory backend
	CatalogPath string `json:"catalog_path,omitempty"`

	// DatabaseURL is the postgres connection string; when empty the
	// postgres backend falls back to the standard PG* env variables
	DatabaseURL string `json:"database_url,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	catalogPath := filepath.Join(homeDir, ".shadecost", "catalog.json")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultCurrency: "GBP",
			CurrencySymbol:  "£",
		},
		Store: StoreConfig{
			Backend:     "memory",
			CatalogPath: catalogPath,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
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
