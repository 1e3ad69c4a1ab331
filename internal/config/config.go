package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/utils"
)

// Config is the resolved application configuration.
type Config struct {
	Store               string   `toml:"store"`
	Timezone            string   `toml:"timezone"`
	Debug               bool     `toml:"debug"`
	ReminderInterval    Duration `toml:"reminder_interval"`
	SystemNotifications *bool    `toml:"system_notifications"`
	TrayAppIdentifier   string   `toml:"tray_app_identifier"`
}

// Duration decodes Go duration strings ("60s", "2m") from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	enabled := true
	return Config{
		Store:               constants.DefaultStorePath,
		Timezone:            constants.DefaultTimezone,
		ReminderInterval:    Duration{constants.DefaultReminderInterval},
		SystemNotifications: &enabled,
		TrayAppIdentifier:   constants.TrayAppIdentifier,
	}
}

// Load reads the TOML file at path over the defaults, then applies environment
// overrides. A missing file is not an error. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if path != "" {
		expanded, err := ExpandHome(path)
		if err != nil {
			return cfg, err
		}
		if _, err := os.Stat(expanded); err == nil {
			var fileCfg Config
			meta, err := toml.DecodeFile(expanded, &fileCfg)
			if err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
			}
			cfg.merge(fileCfg, meta)
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to access config %s: %w", expanded, err)
		}
	}

	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		cfg.Store = conn
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) merge(other Config, meta toml.MetaData) {
	if meta.IsDefined(constants.ConfigStore) && other.Store != "" {
		c.Store = other.Store
	}
	if meta.IsDefined(constants.ConfigTimezone) && other.Timezone != "" {
		c.Timezone = other.Timezone
	}
	if meta.IsDefined(constants.ConfigDebug) {
		c.Debug = other.Debug
	}
	if meta.IsDefined(constants.ConfigReminderInterval) {
		c.ReminderInterval = other.ReminderInterval
	}
	if meta.IsDefined(constants.ConfigSystemNotifications) && other.SystemNotifications != nil {
		c.SystemNotifications = other.SystemNotifications
	}
	if meta.IsDefined(constants.ConfigTrayAppIdentifier) && other.TrayAppIdentifier != "" {
		c.TrayAppIdentifier = other.TrayAppIdentifier
	}
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.ReminderInterval.Duration < time.Second {
		return fmt.Errorf("reminder_interval must be at least 1s, got %s", c.ReminderInterval.Duration)
	}
	return nil
}

// SystemNotificationsAllowed reports whether system-level delivery may be used.
func (c Config) SystemNotificationsAllowed() bool {
	return c.SystemNotifications == nil || *c.SystemNotifications
}

// Location returns the configured timezone.
func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Now returns the current time in the configured timezone.
func (c Config) Now() time.Time {
	return time.Now().In(c.Location())
}

// ConfigDir returns the directory logs and backups live under. For file
// stores it is the store's directory.
func (c Config) ConfigDir() (string, error) {
	if IsPostgres(c.Store) || c.Store == "keyring" {
		return ExpandHome(constants.DefaultConfigDir)
	}
	path, err := ExpandHome(c.Store)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// IsPostgres reports whether store is a PostgreSQL connection string.
func IsPostgres(store string) bool {
	return strings.HasPrefix(store, "postgres://") || strings.HasPrefix(store, "postgresql://")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
