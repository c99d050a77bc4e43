// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     config
// Description: Shell configuration loaded from TOML or YAML with
//              environment overrides
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Shell   ShellConfig   `toml:"shell" yaml:"shell"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Colors  ColorsConfig  `toml:"colors" yaml:"colors"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	DataDir string `toml:"data_dir" yaml:"data_dir" env:"RAIR_DATA_DIR"`
}

// ShellConfig holds the interactive front end settings
type ShellConfig struct {
	HistoryFile  string `toml:"history_file" yaml:"history_file" env:"RAIR_HISTORY_FILE"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit" env:"RAIR_HISTORY_LIMIT"`
	EditMode     string `toml:"edit_mode" yaml:"edit_mode" env:"RAIR_EDIT_MODE"`
	Frontend     string `toml:"frontend" yaml:"frontend" env:"RAIR_FRONTEND"`
	MaxNesting   int    `toml:"max_nesting" yaml:"max_nesting" env:"RAIR_MAX_NESTING"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" env:"RAIR_LOG_LEVEL"`
	Format string `toml:"format" yaml:"format" env:"RAIR_LOG_FORMAT"`
	File   string `toml:"file" yaml:"file" env:"RAIR_LOG_FILE"`
}

// ColorsConfig holds output styling settings
type ColorsConfig struct {
	// Mode is auto, always or never
	Mode string `toml:"mode" yaml:"mode" env:"RAIR_COLOR"`
	// Palette replaces the built-in 9 colors when set
	Palette []string `toml:"palette" yaml:"palette" env:"RAIR_PALETTE" envSeparator:","`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, selected by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rairerror.Wrap(err, "config file not readable").
			WithCode(rairerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, rairerror.Wrap(err, "failed to parse config").
			WithCode(rairerror.CodeConfigError).
			WithDetail("path", path)
	}

	return finish(&cfg)
}

// LoadFromEnv loads the file named by RAIR_CONFIG, or the first file found
// in the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("RAIR_CONFIG")
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return finish(&Config{})
	}

	return Load(path)
}

func defaultPaths() []string {
	paths := []string{
		"./rair.toml",
		"./rair.yaml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "rair", "config.toml"),
			filepath.Join(dir, "rair", "config.yaml"),
		)
	}
	return paths
}

// finish applies environment overrides and defaults, then validates
func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, rairerror.Wrap(err, "invalid environment override").
			WithCode(rairerror.CodeConfigError)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultDataDir returns the per-user data directory of rair
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "rair")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "rair")
	}
	return ".rair"
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.DataDir == "" {
		c.General.DataDir = DefaultDataDir()
	}

	// Shell
	if c.Shell.HistoryFile == "" {
		c.Shell.HistoryFile = filepath.Join(c.General.DataDir, "history")
	}
	if c.Shell.HistoryLimit == 0 {
		c.Shell.HistoryLimit = 1000
	}
	if c.Shell.EditMode == "" {
		c.Shell.EditMode = "emacs"
	}
	if c.Shell.Frontend == "" {
		c.Shell.Frontend = "readline"
	}
	if c.Shell.MaxNesting == 0 {
		c.Shell.MaxNesting = 32
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.General.DataDir, "rair.log")
	}

	// Colors
	if c.Colors.Mode == "" {
		c.Colors.Mode = "auto"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// Validate checks the configuration for unsupported values
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return rairerror.Newf("invalid value for %s: %v", field, value).
			WithCode(rairerror.CodeInvalidConfig).
			WithDetail("field", field)
	}

	if _, err := rairlog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level)
	}
	if _, err := rairlog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format)
	}

	switch c.Shell.EditMode {
	case "emacs", "vi":
	default:
		return invalid("shell.edit_mode", c.Shell.EditMode)
	}

	switch c.Shell.Frontend {
	case "readline", "tui":
	default:
		return invalid("shell.frontend", c.Shell.Frontend)
	}

	if c.Shell.HistoryLimit < 0 {
		return invalid("shell.history_limit", c.Shell.HistoryLimit)
	}
	if c.Shell.MaxNesting < 0 {
		return invalid("shell.max_nesting", c.Shell.MaxNesting)
	}

	switch c.Colors.Mode {
	case "auto", "always", "never":
	default:
		return invalid("colors.mode", c.Colors.Mode)
	}

	if len(c.Colors.Palette) > 0 {
		if len(c.Colors.Palette) != 9 {
			return invalid("colors.palette", c.Colors.Palette)
		}
		for _, color := range c.Colors.Palette {
			if !hexColor.MatchString(color) {
				return invalid("colors.palette", color)
			}
		}
	}

	return nil
}
