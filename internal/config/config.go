// Package config handles the configuration directory, the config file and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todo/internal/storage/sqlstore"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.toml"

	// DataDir is the default file-backend directory inside the config directory.
	DataDir = "data"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

// Defaults.
const (
	DefaultBackend             = BackendFile
	DefaultRedisAddr           = "localhost:6379"
	DefaultRedisPrefix         = "todo:"
	DefaultTable               = sqlstore.DefaultTable
	DefaultWriteTimeoutSeconds = 5
	DefaultLogLevel            = "warn"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Storage    StorageConfig    `toml:"storage"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// StorageConfig selects and configures the persistent storage backend.
type StorageConfig struct {
	Backend string `toml:"backend"`

	// DataDir is the file backend directory. Empty means <Dir>/data.
	DataDir string `toml:"data_dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// DSN is the postgres or mysql connection string.
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`

	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
}

// AppearanceConfig holds display preferences.
type AppearanceConfig struct {
	DarkMode bool `toml:"dark_mode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// New creates a Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Storage = StorageConfig{
		Backend:             DefaultBackend,
		RedisAddr:           DefaultRedisAddr,
		RedisPrefix:         DefaultRedisPrefix,
		Table:               DefaultTable,
		WriteTimeoutSeconds: DefaultWriteTimeoutSeconds,
	}
	cfg.Log = LogConfig{Level: DefaultLogLevel}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the file backend directory.
func (c *Config) DataPath() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return filepath.Join(c.Dir, DataDir)
}

// WriteTimeout returns the per-write storage timeout.
func (c *Config) WriteTimeout() time.Duration {
	if c.Storage.WriteTimeoutSeconds <= 0 {
		return DefaultWriteTimeoutSeconds * time.Second
	}
	return time.Duration(c.Storage.WriteTimeoutSeconds) * time.Second
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if the config file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch backend {
	case BackendFile, BackendRedis:
	case BackendPostgres, BackendMySQL:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s backend", backend)
		}
		if !sqlstore.ValidTableName(c.Storage.Table) {
			return fmt.Errorf("invalid storage.table: %q", c.Storage.Table)
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	c.Storage.Backend = backend

	if backend == BackendRedis && c.Storage.RedisAddr == "" {
		return fmt.Errorf("storage.redis_addr is required for the redis backend")
	}
	if c.Storage.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("invalid storage.write_timeout_seconds: %d", c.Storage.WriteTimeoutSeconds)
	}
	return nil
}
