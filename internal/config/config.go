// Package config loads pkcegen settings from the environment and persists
// user preferences between sessions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/pkcegen/internal/pkce"
	"github.com/joho/godotenv"
)

const appName = "pkcegen"

// Config holds settings read from the environment. Zero values mean "not
// set".
type Config struct {
	// Length is the verifier length to start with.
	Length int `env:"PKCEGEN_LENGTH"`
	// Debug enables debug logging.
	Debug bool `env:"PKCEGEN_DEBUG"`
	// DataDir holds preferences and logs.
	DataDir string `env:"PKCEGEN_GLOBAL_DATA"`
	// KeyGlyphs selects shortcut labels: "mac", "pc" or empty for the current
	// platform.
	KeyGlyphs string `env:"PKCEGEN_KEY_GLYPHS"`
}

// Load reads an optional .env file from the working directory and parses the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return &cfg, nil
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if c.Length != 0 && !pkce.ValidLength(c.Length) {
		return fmt.Errorf("invalid PKCEGEN_LENGTH: %w: got %d", pkce.ErrInvalidLength, c.Length)
	}
	switch c.KeyGlyphs {
	case "", "mac", "pc":
	default:
		return fmt.Errorf("invalid PKCEGEN_KEY_GLYPHS %q: must be mac or pc", c.KeyGlyphs)
	}
	return nil
}

// LogFile returns the path of the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "logs", appName+".log")
}

// DefaultDataDir returns ~/.local/share/pkcegen, honoring XDG_DATA_HOME.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ResolveLength picks the starting verifier length: an explicit flag, then
// the environment, then the saved preference, then the default. Only valid
// lengths are considered.
func ResolveLength(flag int, flagSet bool, cfg *Config, prefs *Preferences) (int, error) {
	if flagSet {
		if !pkce.ValidLength(flag) {
			return 0, fmt.Errorf("invalid --length: %w: got %d", pkce.ErrInvalidLength, flag)
		}
		return flag, nil
	}
	if cfg != nil && cfg.Length != 0 {
		return cfg.Length, nil
	}
	if prefs != nil && pkce.ValidLength(prefs.VerifierLength) {
		return prefs.VerifierLength, nil
	}
	return pkce.MaxVerifierLength, nil
}
