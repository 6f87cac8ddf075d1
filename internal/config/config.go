// ABOUTME: fitrank configuration management with backend selection.
// ABOUTME: Handles the config file, FITRANK_* environment overrides, and the storage factory.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitrank/internal/charm"
	"github.com/harperreed/fitrank/internal/storage"
)

// Backend names accepted in the config file.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendCharm    = "charm"
)

// Config stores fitrank configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "postgres" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data. SQLite puts fitrank.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitrank.
	DataDir string `json:"data_dir,omitempty"`

	// PostgresDSN is a postgres:// URL used by the postgres backend.
	PostgresDSN string `json:"postgres_dsn,omitempty"`

	// Timezone is the IANA zone whose midnights separate training days.
	// Empty means the system local zone.
	Timezone string `json:"timezone,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// UserID is the active profile used when commands get no explicit user.
	UserID string `json:"user_id,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() (log.Level, error) {
	if c.LogLevel == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the process logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := c.GetLogLevel()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "fitrank",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks every field that can be checked without opening storage.
func (c *Config) Validate() error {
	var errs []error
	switch c.GetBackend() {
	case BackendSQLite, BackendCharm:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres_dsn is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend: %q", c.Backend))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.GetLogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(ctx context.Context) (storage.Repository, error) {
	switch c.GetBackend() {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), "fitrank.db"))
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, errors.New("postgres_dsn is required for the postgres backend")
		}
		return storage.OpenPostgres(ctx, c.PostgresDSN)
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitrank", "config.json")
}

// LoadFile reads config from disk without applying environment overrides.
// Use it when the config will be saved back.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// Load reads config from disk and applies FITRANK_* environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITRANK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("FITRANK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FITRANK_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("FITRANK_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("FITRANK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FITRANK_USER_ID"); v != "" {
		cfg.UserID = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
