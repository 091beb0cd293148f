// Package config loads tunedeck's TOML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that override the config files.
const (
	EnvAPIURL   = "TUNEDECK_API_URL"
	EnvLogLevel = "TUNEDECK_LOG_LEVEL"
)

// Defaults applied by the Get*Config accessors.
const (
	DefaultAPIURL         = "http://localhost:8000"
	DefaultAPITimeout     = 10 * time.Second
	DefaultVolume         = 0.75
	DefaultTimeUpdate     = 250 * time.Millisecond
	DefaultHistorySize    = 10
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxBackups  = 3
	DefaultLogMaxAgeDays  = 28
	minTimeUpdateInterval = 50 * time.Millisecond
)

type Config struct {
	API    APIConfig    `koanf:"api"`
	Player PlayerConfig `koanf:"player"`
	Log    LogConfig    `koanf:"log"`

	// Desktop notifications on track change (default: true)
	Notifications *bool `koanf:"notifications"`

	// MPRIS D-Bus media controls (default: true)
	MPRIS *bool `koanf:"mpris"`
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL        string `koanf:"base_url"`        // e.g., "http://localhost:8000"
	TimeoutSeconds int    `koanf:"timeout_seconds"` // per request (default: 10)
}

// PlayerConfig holds playback settings.
type PlayerConfig struct {
	Volume       *float64 `koanf:"volume"`         // initial volume 0.0-1.0, used until one is saved
	TimeUpdateMS int      `koanf:"time_update_ms"` // position refresh interval (default: 250)
	HistorySize  int      `koanf:"history_size"`   // played tracks kept (default: 10)
}

// LogConfig holds the log file settings.
type LogConfig struct {
	Level      string `koanf:"level"` // "debug", "info", "warn" or "error"
	File       string `koanf:"file"`  // default: $XDG_STATE_HOME/tunedeck/tunedeck.log
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Load reads .env, then the config files in priority order, then the
// environment overrides.
func Load() (*Config, error) {
	// A missing .env is normal; existing variables are never overridden.
	_ = godotenv.Load()

	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files (last wins) and applies the
// environment overrides. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}

	// Normalize API URL (remove trailing slash)
	cfg.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.API.BaseURL), "/")

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tunedeck", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAPIConfig returns the API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = int(DefaultAPITimeout / time.Second)
	}
	return cfg
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player
	v := DefaultVolume
	if cfg.Volume != nil && *cfg.Volume >= 0 && *cfg.Volume <= 1 {
		v = *cfg.Volume
	}
	cfg.Volume = &v
	if cfg.TimeUpdateMS <= 0 || time.Duration(cfg.TimeUpdateMS)*time.Millisecond < minTimeUpdateInterval {
		cfg.TimeUpdateMS = int(DefaultTimeUpdate / time.Millisecond)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	return cfg
}

// TimeUpdate returns the position refresh interval.
func (p PlayerConfig) TimeUpdate() time.Duration {
	return time.Duration(p.TimeUpdateMS) * time.Millisecond
}

// InitialVolume returns the configured volume, or DefaultVolume.
func (p PlayerConfig) InitialVolume() float64 {
	if p.Volume == nil {
		return DefaultVolume
	}
	return *p.Volume
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = DefaultLogLevel
	}
	if cfg.File == "" {
		if path, err := xdg.StateFile(filepath.Join("tunedeck", "tunedeck.log")); err == nil {
			cfg.File = path
		} else {
			cfg.File = filepath.Join(os.TempDir(), "tunedeck.log")
		}
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultLogMaxBackups
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = DefaultLogMaxAgeDays
	}
	return cfg
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether the MPRIS server is on.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}
