// Package config provides configuration management for the options
// analytics toolkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	apperrors "optionlab/internal/errors"
)

// Config holds all application configuration. Decimal-valued settings
// are kept as strings in the file and parsed on access so no precision
// is lost to TOML floats.
type Config struct {
	Pricing    PricingConfig    `mapstructure:"pricing"`
	Neutrality NeutralityConfig `mapstructure:"neutrality"`
	Store      StoreConfig      `mapstructure:"store"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// PricingConfig holds default market inputs for pricing commands.
type PricingConfig struct {
	RiskFreeRate  string `mapstructure:"risk_free_rate"`
	DividendYield string `mapstructure:"dividend_yield"`
}

// NeutralityConfig holds the delta-neutrality settings.
type NeutralityConfig struct {
	Threshold string `mapstructure:"threshold"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/optionlab"
	}
	return filepath.Join(home, ".config", "optionlab")
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used. A missing config
// file produces a template and an error naming it.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, createTemplateConfig(configDir)
		}
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("pricing.risk_free_rate", "0.05")
	v.SetDefault("pricing.dividend_yield", "0")
	v.SetDefault("neutrality.threshold", "0.0001")
	v.SetDefault("store.path", filepath.Join(configDir, "optionlab.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "optionlab.log"))
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age_days", 30)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPTIONLAB_RISK_FREE_RATE"); v != "" {
		cfg.Pricing.RiskFreeRate = v
	}
	if v := os.Getenv("OPTIONLAB_DIVIDEND_YIELD"); v != "" {
		cfg.Pricing.DividendYield = v
	}
	if v := os.Getenv("OPTIONLAB_DELTA_THRESHOLD"); v != "" {
		cfg.Neutrality.Threshold = v
	}
	if v := os.Getenv("OPTIONLAB_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("OPTIONLAB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := decimal.NewFromString(c.Pricing.RiskFreeRate); err != nil {
		return fmt.Errorf("%w: pricing.risk_free_rate %q", apperrors.ErrConfigInvalid, c.Pricing.RiskFreeRate)
	}
	yield, err := decimal.NewFromString(c.Pricing.DividendYield)
	if err != nil || yield.IsNegative() {
		return fmt.Errorf("%w: pricing.dividend_yield %q", apperrors.ErrConfigInvalid, c.Pricing.DividendYield)
	}
	threshold, err := decimal.NewFromString(c.Neutrality.Threshold)
	if err != nil || threshold.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: neutrality.threshold %q must be a positive decimal", apperrors.ErrConfigInvalid, c.Neutrality.Threshold)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", apperrors.ErrConfigInvalid, c.Logging.Level)
	}
	return nil
}

// RiskFreeRate returns the default risk-free rate.
func (c *Config) RiskFreeRate() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Pricing.RiskFreeRate)
	return d
}

// DividendYield returns the default dividend yield.
func (c *Config) DividendYield() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Pricing.DividendYield)
	return d
}

// DeltaThreshold returns the neutrality threshold.
func (c *Config) DeltaThreshold() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Neutrality.Threshold)
	return d
}
