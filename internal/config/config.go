// Package config loads console settings from defaults, an optional TOML file
// and command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/joshuapare/addrspace/space"
)

// DefaultPrompt is shown before each interactive command.
const DefaultPrompt = "enter your command > "

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds everything the CLI needs to build an engine and a console.
type Config struct {
	// TotalSize is the size of the simulated address space.
	TotalSize int `toml:"total_size"`

	// Prompt is printed before each command when reading from a terminal.
	Prompt string `toml:"prompt"`

	// Color is one of auto, always or never.
	Color string `toml:"color"`

	// Grouping prints addresses with thousands separators.
	Grouping bool `toml:"grouping"`

	Log LogConfig `toml:"log"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Level   string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TotalSize: space.DefaultTotalSize,
		Prompt:    DefaultPrompt,
		Color:     ColorAuto,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys that do not map to a
// field are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	var errs []error
	if c.TotalSize <= 0 {
		errs = append(errs, fmt.Errorf("total_size must be positive, got %d", c.TotalSize))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color must be auto, always or never, got %q", c.Color))
	}
	return errors.Join(errs...)
}
