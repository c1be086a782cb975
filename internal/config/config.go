// Package config loads and saves the tracker configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// HomeEnv overrides the state directory.
const HomeEnv = "IDENTITYOS_HOME"

// FileName is the config file inside the state directory.
const FileName = "config.toml"

// Config represents the tracker configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Calendar CalendarConfig `toml:"calendar"`
	Stats    StatsConfig    `toml:"stats"`
	Server   ServerConfig   `toml:"server"`
	Assets   AssetsConfig   `toml:"assets"`
	Log      LogConfig      `toml:"log"`
}

// StorageConfig locates the database and local state.
type StorageConfig struct {
	StateDir string `toml:"state_dir"` // empty means the resolved home
	DBFile   string `toml:"db_file"`   // relative to StateDir
}

// CalendarConfig selects the timezone used for date keys.
type CalendarConfig struct {
	Timezone string `toml:"timezone"` // IANA name; "Local" for the system zone
}

// StatsConfig bounds the streak walk.
type StatsConfig struct {
	MaxLookbackDays int `toml:"max_lookback_days"`
}

// ServerConfig configures `identityos serve`.
type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	AssetDir string `toml:"asset_dir"` // empty serves the embedded bundle
	Metrics  bool   `toml:"metrics"`
}

// AssetsConfig names the offline bundle version.
type AssetsConfig struct {
	Version string `toml:"version"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage:  StorageConfig{DBFile: "identityos.db"},
		Calendar: CalendarConfig{Timezone: "Local"},
		Stats:    StatsConfig{MaxLookbackDays: 365},
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8090, Metrics: true},
		Assets:   AssetsConfig{Version: "project90-v1"},
		Log:      LogConfig{Level: "warn"},
	}
}

// HomeDir resolves the state directory: $IDENTITYOS_HOME, else ~/.identityos.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".identityos"), nil
}

// LoadConfig reads config.toml from dir. A missing file yields DefaultConfig.
// Keys absent from the file keep their defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, FileName)

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			cfg.Storage.StateDir = dir
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Storage.StateDir == "" {
		cfg.Storage.StateDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.toml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate rejects values the tracker cannot run with.
func (c *Config) Validate() error {
	if c.Stats.MaxLookbackDays < 1 {
		return fmt.Errorf("stats.max_lookback_days must be at least 1, got %d", c.Stats.MaxLookbackDays)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the calendar timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" || c.Calendar.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

// DBPath returns the database file path.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.Storage.DBFile) {
		return c.Storage.DBFile
	}
	return filepath.Join(c.Storage.StateDir, c.Storage.DBFile)
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
