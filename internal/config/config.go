// Package config handles configuration loading and validation for revy-actions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	DBPath   string     `yaml:"db_path"`
	ScopeID  string     `yaml:"scope_id"`
	Log      LogConfig  `yaml:"log"`
	List     ListConfig `yaml:"list"`
	DemoSeed bool       `yaml:"demo_seed"`
}

// LogConfig holds logging configuration. Logs go to a file so the TUI
// owns the terminal.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// ListConfig tunes the list renderer.
type ListConfig struct {
	EstimatedRowHeight int `yaml:"estimated_row_height"`
	Overscan           int `yaml:"overscan"`
	PlainThreshold     int `yaml:"plain_threshold"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:  defaultDataPath("actions.db"),
		ScopeID: "default",
		Log: LogConfig{
			Path:  defaultDataPath("revy-actions.log"),
			Level: "info",
		},
		List: ListConfig{
			EstimatedRowHeight: 2,
			Overscan:           4,
			PlainThreshold:     200,
		},
	}
}

// Load reads configuration from the given path, then applies REVY_*
// environment overrides. A missing file is not an error; defaults apply.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg = fromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.ScopeID == "" {
		return fmt.Errorf("scope_id must not be empty")
	}
	if c.List.EstimatedRowHeight <= 0 {
		return fmt.Errorf("estimated_row_height must be positive")
	}
	if c.List.Overscan < 0 {
		return fmt.Errorf("overscan must not be negative")
	}
	if c.List.PlainThreshold < 0 {
		return fmt.Errorf("plain_threshold must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled", "":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}
	return nil
}

func fromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("REVY_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("REVY_SCOPE_ID"); ok {
		cfg.ScopeID = v
	}
	if v, ok := getEnvString("REVY_LOG_PATH"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnvString("REVY_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvInt("REVY_ESTIMATED_ROW_HEIGHT"); ok && v > 0 {
		cfg.List.EstimatedRowHeight = v
	}
	if v, ok := getEnvInt("REVY_OVERSCAN"); ok && v >= 0 {
		cfg.List.Overscan = v
	}
	if v, ok := getEnvInt("REVY_PLAIN_THRESHOLD"); ok && v >= 0 {
		cfg.List.PlainThreshold = v
	}
	if v, ok := getEnvBool("REVY_DEMO_SEED"); ok {
		cfg.DemoSeed = v
	}
	return cfg
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".revy-actions", name)
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
