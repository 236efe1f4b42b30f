// Package config loads capline CLI configuration from a YAML file
// with environment overrides.
package config

import (
	"fmt"
	"log/slog"

	"pkt.systems/capline"
)

const (
	DefaultWidth    = 60
	DefaultLanguage = "en-US"
	DefaultLogLevel = "warn"
)

// Config mirrors the settings a caption deployment exposes to users:
// display preferences plus process-level knobs for the CLI.
type Config struct {
	Width           int    `yaml:"width"`
	FadeText        bool   `yaml:"fade_text"`
	Uppercase       bool   `yaml:"uppercase"`
	FilterSlurs     bool   `yaml:"filter_slurs"`
	FilterProfanity bool   `yaml:"filter_profanity"`
	Language        string `yaml:"language"`
	LogLevel        string `yaml:"log_level"`
}

// Validate applies defaults and rejects out-of-range values.
func (c *Config) Validate() error {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Width < 0 {
		return fmt.Errorf("config: width must be > 0, got %d", c.Width)
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Settings returns the per-update settings snapshot the engine
// consumes.
func (c Config) Settings() capline.Settings {
	mode := capline.FilterNone
	if c.FilterSlurs {
		mode = capline.FilterSlurs
	}
	if c.FilterProfanity {
		mode = capline.FilterProfanity
	}
	return capline.Settings{
		FadeText:  c.FadeText,
		Uppercase: c.Uppercase,
		Filter:    mode,
	}
}

// SlogLevel maps the configured level onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
