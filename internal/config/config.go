// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"infra-estimator/core/types"
	"infra-estimator/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. ESTIMATOR_SERVER_ADDRESS
// or ESTIMATOR_ESTIMATE_DEFAULT_CURRENCY
const EnvPrefix = "ESTIMATOR"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" ignored:"true"`

	// Estimate contains defaults applied to new estimates
	Estimate EstimateConfig `json:"estimate"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server"`

	// Cache contains result cache configuration
	Cache CacheConfig `json:"cache"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" envconfig:"LOG"`
}

// EstimateConfig contains estimate defaults
type EstimateConfig struct {
	// DefaultPreset is used when an input names none
	DefaultPreset types.Preset `json:"default_preset" split_words:"true"`

	// DefaultCurrency overrides the preset's display currency when an
	// input names none; empty keeps the preset default
	DefaultCurrency types.Currency `json:"default_currency" split_words:"true"`

	// ScenarioUsers are the matrix columns; empty means the built-in set
	ScenarioUsers []int `json:"scenario_users,omitempty" split_words:"true"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" split_words:"true"`

	// ShowFormulas prints the arithmetic behind each line item
	ShowFormulas bool `json:"show_formulas" split_words:"true"`

	// ShowNotes prints the informational panel
	ShowNotes bool `json:"show_notes" split_words:"true"`

	// Color enables terminal styling
	Color bool `json:"color" split_words:"true"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address" split_words:"true"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds" split_words:"true"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds" split_words:"true"`

	// AllowedOrigins is the CORS allow list
	AllowedOrigins []string `json:"allowed_origins" split_words:"true"`

	// MetricsEnabled exposes /metrics
	MetricsEnabled bool `json:"metrics_enabled" split_words:"true"`
}

// CacheConfig contains cache-related settings
type CacheConfig struct {
	// Enabled memoizes engine results by configuration
	Enabled bool `json:"enabled" split_words:"true"`

	// Capacity is the maximum number of cached results per kind
	Capacity int `json:"capacity" split_words:"true"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Estimate: EstimateConfig{
			DefaultPreset: types.PresetArchitecture,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowFormulas:  false,
			ShowNotes:     true,
			Color:         true,
		},
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 30,
			AllowedOrigins:      []string{"*"},
			MetricsEnabled:      true,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1024,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.infra-estimator/config.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".infra-estimator", "config.json")
}

// Load loads configuration from a file and then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overlays ESTIMATOR_* environment variables. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnv() error {
	return envconfig.Process(EnvPrefix, c)
}

// Validate rejects values the estimator cannot honour
func (c *Config) Validate() error {
	if !c.Estimate.DefaultPreset.Valid() {
		return fmt.Errorf("unknown default preset %q", c.Estimate.DefaultPreset)
	}
	if c.Estimate.DefaultCurrency != "" && !c.Estimate.DefaultCurrency.Valid() {
		return fmt.Errorf("unknown default currency %q", c.Estimate.DefaultCurrency)
	}
	for _, n := range c.Estimate.ScenarioUsers {
		if n < 0 {
			return fmt.Errorf("scenario user count %d is negative", n)
		}
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache capacity %d is negative", c.Cache.Capacity)
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
