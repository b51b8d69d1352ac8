// Package config loads the application configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName names the configuration directory and the desktop app.
const AppName = "PomodoroVibe"

// EnvPrefix prefixes environment overrides, e.g. POMODORO_STORE_BACKEND.
const EnvPrefix = "POMODORO"

// Storage backends for the settings record.
const (
	BackendPreferences = "preferences"
	BackendYAML        = "yaml"
	BackendSQLite      = "sqlite"
	BackendMemory      = "memory"
)

// ErrUnknownBackend is returned for an unsupported store.backend value.
var ErrUnknownBackend = errors.New("unknown store backend")

// Config is the top-level application configuration.
type Config struct {
	Store        StoreConfig   `mapstructure:"store" yaml:"store"`
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	WatchStore   bool          `mapstructure:"watch_store" yaml:"watch_store"`
}

// StoreConfig selects where the settings record lives. An empty Backend
// lets the front end pick its natural default.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		WatchStore:   true,
	}
}

// DefaultConfigPath returns <UserConfigDir>/PomodoroVibe/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// BackendOr returns the configured backend, or fallback when none is set.
func (store StoreConfig) BackendOr(fallback string) string {
	if store.Backend == "" {
		return fallback
	}
	return store.Backend
}

// Load reads configuration from path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("watch_store", cfg.WatchStore)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Store.Backend {
	case "", BackendPreferences, BackendYAML, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("store.backend %q: %w", cfg.Store.Backend, ErrUnknownBackend)
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", cfg.TickInterval)
	}
	return nil
}
