package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written by `teller init`.
const FileName = "teller.yaml"

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Limits LimitsConfig `yaml:"limits"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig locates the ledger file.
type StoreConfig struct {
	Path string `yaml:"path"` // relative paths resolve against the config file's directory
}

// LimitsConfig holds per-transaction amount ceilings.
type LimitsConfig struct {
	MaxDeposit    int64 `yaml:"max_deposit"`
	MaxWithdrawal int64 `yaml:"max_withdrawal"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Load reads a teller.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), cfg.Store.Path)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that would make the ledger unusable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("store.path is required")
	}
	if c.Limits.MaxDeposit <= 0 {
		return fmt.Errorf("limits.max_deposit must be positive, got %d", c.Limits.MaxDeposit)
	}
	if c.Limits.MaxWithdrawal <= 0 {
		return fmt.Errorf("limits.max_withdrawal must be positive, got %d", c.Limits.MaxWithdrawal)
	}
	return nil
}

// Default returns a Config with the standard limits and a database.json
// ledger next to the config file.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "database.json",
		},
		Limits: LimitsConfig{
			MaxDeposit:    100_000,
			MaxWithdrawal: 10_000,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
