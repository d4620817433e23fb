// Package config provides configuration management for Ember.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Home       string           `yaml:"home"`
	Network    NetworkConfig    `yaml:"network"`
	Gas        GasConfig        `yaml:"gas"`
	Derivation DerivationConfig `yaml:"derivation"`
	Transport  TransportConfig  `yaml:"transport"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// NetworkConfig defines node and faucet endpoints.
type NetworkConfig struct {
	Name      string `yaml:"name"`
	NodeURL   string `yaml:"node_url"`
	FaucetURL string `yaml:"faucet_url"`
}

// GasConfig defines fee allowances per operation class.
type GasConfig struct {
	TransferBudget uint64 `yaml:"transfer_budget"`
	NFTBudget      uint64 `yaml:"nft_budget"`
}

// DerivationConfig defines key derivation settings.
type DerivationConfig struct {
	MaxAccounts int `yaml:"max_accounts"`
}

// TransportConfig defines retry and rate-limit behavior for node calls.
type TransportConfig struct {
	RetryAttempts  int     `yaml:"retry_attempts"`
	RetryBaseMs    int     `yaml:"retry_base_ms"`
	RetryMaxMs     int     `yaml:"retry_max_ms"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, layered over the
// defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// DefaultHome returns the default ember home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ember"
	}
	return filepath.Join(home, ".ember")
}

// WalletDir returns the directory wallet files live in.
func (c *Config) WalletDir() string {
	return filepath.Join(ExpandHome(c.Home), "wallets")
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}
