// Package config loads and persists budgetd configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetd configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Cache      CacheConfig      `toml:"cache"`
	Sync       SyncConfig       `toml:"sync"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
}

// GeneralConfig holds currency and default location preferences.
type GeneralConfig struct {
	Currency      string `toml:"currency"`
	CountryCode   string `toml:"country_code"`
	SubregionCode string `toml:"subregion_code,omitempty"`
}

// BudgetConfig holds allocation tuning.
type BudgetConfig struct {
	WeekendMultiplier    float64 `toml:"weekend_multiplier"`
	OverrunTolerance     float64 `toml:"overrun_tolerance"`
	DefaultMonthlyIncome float64 `toml:"default_monthly_income"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend             string `toml:"backend"` // sqlite | memory | redis
	RedisAddr           string `toml:"redis_addr,omitempty"`
	DashboardTTLMinutes int    `toml:"dashboard_ttl_minutes"`
	CalendarTTLMinutes  int    `toml:"calendar_ttl_minutes"`
	ProfileTTLMinutes   int    `toml:"profile_ttl_minutes"`
}

// SyncConfig holds background sync and local API settings.
type SyncConfig struct {
	APIBaseURL          string `toml:"api_base_url"`
	IntervalMinutes     int    `toml:"interval_minutes"`
	ResourceTimeoutSecs int    `toml:"resource_timeout_secs"`
	ListenAddr          string `toml:"listen_addr"`
}

// ThresholdsConfig points at an optional YAML override file for the
// income threshold tables.
type ThresholdsConfig struct {
	File string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:    "USD",
			CountryCode: "US",
		},
		Budget: BudgetConfig{
			WeekendMultiplier:    1.5,
			OverrunTolerance:     0.30,
			DefaultMonthlyIncome: 3500,
		},
		Cache: CacheConfig{
			Backend:             "sqlite",
			DashboardTTLMinutes: 15,
			CalendarTTLMinutes:  60,
			ProfileTTLMinutes:   240,
		},
		Sync: SyncConfig{
			IntervalMinutes:     5,
			ResourceTimeoutSecs: 6,
			ListenAddr:          "127.0.0.1:8480",
		},
	}
}

// SyncInterval returns the periodic sync cadence.
func (c Config) SyncInterval() time.Duration {
	if c.Sync.IntervalMinutes < 1 {
		return 5 * time.Minute
	}
	return time.Duration(c.Sync.IntervalMinutes) * time.Minute
}

// ResourceTimeout returns the per-resource fetch timeout.
func (c Config) ResourceTimeout() time.Duration {
	if c.Sync.ResourceTimeoutSecs < 1 {
		return 6 * time.Second
	}
	return time.Duration(c.Sync.ResourceTimeoutSecs) * time.Second
}

// DashboardTTL returns the dashboard cache entry lifetime.
func (c Config) DashboardTTL() time.Duration {
	return minutesOr(c.Cache.DashboardTTLMinutes, 15*time.Minute)
}

// CalendarTTL returns the calendar cache entry lifetime.
func (c Config) CalendarTTL() time.Duration {
	return minutesOr(c.Cache.CalendarTTLMinutes, time.Hour)
}

// ProfileTTL returns the profile cache entry lifetime.
func (c Config) ProfileTTL() time.Duration {
	return minutesOr(c.Cache.ProfileTTLMinutes, 4*time.Hour)
}

func minutesOr(minutes int, fallback time.Duration) time.Duration {
	if minutes < 1 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetd")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetd")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CachePath returns the default SQLite cache location in the XDG data
// directory.
func CachePath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetd", "cache.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetd", "cache.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
