// Package config loads lifelog settings from a YAML file with environment
// overrides. Precedence, lowest to highest: built-in defaults, config file,
// LIFELOG_* environment variables; command-line flags override all of these
// at the call site.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/unowned-tools/lifelog/pkg/utils"
)

// Config holds the runtime settings for the CLI and the MCP server.
type Config struct {
	DBPath             string `yaml:"db_path"`
	WAL                bool   `yaml:"wal"`
	Sync               string `yaml:"sync"`
	QueryLimit         int    `yaml:"query_limit"`
	ReminderWindowDays int    `yaml:"reminder_window_days"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:             utils.GetDefaultDBPathOnly(),
		WAL:                true,
		Sync:               "NORMAL",
		QueryLimit:         50,
		ReminderWindowDays: 30,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(homeDir, ".config", "lifelog", "config.yaml")
}

// Load reads the YAML file at path (missing file is not an error: defaults
// apply) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIFELOG_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("LIFELOG_WAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.WAL = b
		}
	}
	if v := os.Getenv("LIFELOG_SYNC"); v != "" {
		c.Sync = v
	}
	if v := os.Getenv("LIFELOG_QUERY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.QueryLimit = n
		}
	}
	if v := os.Getenv("LIFELOG_REMINDER_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ReminderWindowDays = n
		}
	}
}
