package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file (<dir>/config.toml), if present
// 3. Environment variables
func Load(configDir string) (*Config, error) {
	cfg, err := LoadFile(configDir)
	if err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile builds the configuration from defaults and the config file only.
// Use it before Save so environment overrides are not written back.
func LoadFile(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if cfg.HasConfigFile() {
		if _, err := toml.DecodeFile(cfg.ConfigPath(), cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigPath(), err)
		}
	}
	return cfg, nil
}

// loadFromEnv overrides config from TODO_* environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("TODO_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("TODO_REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := os.Getenv("TODO_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TODO_REDIS_DB: %s", v)
		}
		cfg.Storage.RedisDB = n
	}
	if v := os.Getenv("TODO_SQL_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Save writes the config file with mode 0600, creating the directory if needed.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), buf.Bytes(), 0600)
}
