// Package config loads the vizlayout configuration file and applies
// environment overrides.
//
// The file is TOML and optional; missing keys keep their defaults:
//
//	catalog = ["dx", "pe", "ou", "gd"]
//
//	[drag]
//	padding = 9.0
//
//	[serve]
//	addr = "127.0.0.1:7420"
//	log_file = "/var/log/vizlayout/serve.log"
//
//	[log]
//	level = "info"
//
// Environment variables override the file: VIZLAYOUT_PADDING,
// VIZLAYOUT_ADDR, VIZLAYOUT_LOG_FILE and VIZLAYOUT_LOG_LEVEL.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/vizlayout/pkg/dnd"
	"github.com/matzehuels/vizlayout/pkg/errors"
)

const appName = "vizlayout"

// Env var names used as overrides.
const (
	EnvPadding  = "VIZLAYOUT_PADDING"
	EnvAddr     = "VIZLAYOUT_ADDR"
	EnvLogFile  = "VIZLAYOUT_LOG_FILE"
	EnvLogLevel = "VIZLAYOUT_LOG_LEVEL"
)

// Config is the user configuration.
type Config struct {
	// Catalog is the list of known dimensions shown in the sidebar of the
	// editor and the HTTP bridge.
	Catalog []string    `toml:"catalog"`
	Drag    DragConfig  `toml:"drag"`
	Serve   ServeConfig `toml:"serve"`
	Log     LogConfig   `toml:"log"`
}

type DragConfig struct {
	Padding float64 `toml:"padding"`
}

type ServeConfig struct {
	Addr string `toml:"addr"`
	// LogFile enables a rotating log file next to stderr.
	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Catalog: []string{},
		Drag:    DragConfig{Padding: dnd.DefaultPadding},
		Serve: ServeConfig{
			Addr:          "127.0.0.1:7420",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
			LogMaxAgeDays: 28,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the config file location, following XDG
// (~/.config/vizlayout/config.toml).
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path on top of Defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
			}
		case os.IsNotExist(err):
		default:
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvPadding)); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvPadding)
		}
		cfg.Drag.Padding = p
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Serve.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		cfg.Serve.LogFile = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Drag.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "drag.padding must not be negative, got %v", c.Drag.Padding)
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.addr is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Catalog))
	for _, id := range c.Catalog {
		if err := errors.ValidateDimensionID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "catalog")
		}
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidConfig, "catalog lists %q twice", id)
		}
		seen[id] = true
	}
	return nil
}

// Level parses Log.Level.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return lvl, nil
}

// String renders the effective configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
