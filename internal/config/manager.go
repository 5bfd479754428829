// Package config loads the deployment configuration and answers feature-flag
// queries. Resolution order is defaults, then the YAML config file, then
// AMBIENTCLOCK_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	ambienterrors "github.com/drummsters/ambientclock/pkg/errors"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ambientclock", "config.yml")
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "ambientclock")
}

// Manager answers configuration and feature-flag queries for the lifetime of
// the process.
type Manager struct {
	cfg Config
}

// Load reads, resolves and validates the configuration. A missing config file
// yields the defaults; a malformed one is a ParseError.
func Load(path string) (*Manager, error) {
	v := viper.New()

	v.SetDefault("background.provider", "builtin")
	v.SetDefault("background.query", "nature")
	v.SetDefault("background.cycle_interval", 300)
	v.SetDefault("storage.state_file", filepath.Join(defaultDataDir(), "state.json"))
	v.SetDefault("storage.favorites_file", filepath.Join(defaultDataDir(), "favorites.json"))
	v.SetDefault("log.level", "info")
	v.SetDefault("features.donate", true)
	v.SetDefault("features.favorites", true)
	v.SetDefault("features.fullscreen", true)
	v.SetDefault("features.next-background", true)

	v.SetEnvPrefix("AMBIENTCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("AMBIENTCLOCK_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, ambienterrors.NewParseError(path, 0, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ambienterrors.NewParseError(path, 0, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &Manager{cfg: cfg}, nil
}

// NewManager wraps an in-memory config, mostly for tests.
func NewManager(cfg Config) (*Manager, error) {
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &Manager{cfg: cfg}, nil
}

// IsFeatureEnabled reports whether a named feature flag is on. Unknown flags
// are off.
func (m *Manager) IsFeatureEnabled(name string) bool {
	if m == nil {
		return false
	}
	return m.cfg.Features[name]
}

// FullConfig returns a copy of the resolved configuration.
func (m *Manager) FullConfig() Config {
	cfg := m.cfg
	if cfg.Features != nil {
		features := make(map[string]bool, len(cfg.Features))
		for k, v := range cfg.Features {
			features[k] = v
		}
		cfg.Features = features
	}
	return cfg
}

// Background returns the background rotation settings.
func (m *Manager) Background() BackgroundConfig { return m.cfg.Background }

// Storage returns the snapshot locations.
func (m *Manager) Storage() StorageConfig { return m.cfg.Storage }

// LogLevel returns the configured log level.
func (m *Manager) LogLevel() string { return m.cfg.Log.Level }
