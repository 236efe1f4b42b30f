package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration from a YAML file and environment
// variables. Tests override Lookup and ReadFile to inject
// deterministic inputs.
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load reads the file at path (when non-empty), applies CAPLINE_*
// environment overrides, and validates the result. A missing file at
// the default path is not an error; an explicitly requested file must
// exist.
func (l Loader) Load(path string, explicit bool) (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	var cfg Config
	if path != "" {
		raw, err := l.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// default location, fall through to defaults
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	overrideString(l.Lookup, "CAPLINE_LANGUAGE", &cfg.Language)
	overrideString(l.Lookup, "CAPLINE_LOG_LEVEL", &cfg.LogLevel)
	if err := overrideInt(l.Lookup, "CAPLINE_WIDTH", &cfg.Width); err != nil {
		return Config{}, err
	}
	if err := overrideBool(l.Lookup, "CAPLINE_FADE_TEXT", &cfg.FadeText); err != nil {
		return Config{}, err
	}
	if err := overrideBool(l.Lookup, "CAPLINE_UPPERCASE", &cfg.Uppercase); err != nil {
		return Config{}, err
	}
	if err := overrideBool(l.Lookup, "CAPLINE_FILTER_SLURS", &cfg.FilterSlurs); err != nil {
		return Config{}, err
	}
	if err := overrideBool(l.Lookup, "CAPLINE_FILTER_PROFANITY", &cfg.FilterProfanity); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location, or "" when no
// home directory is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "capline", "config.yaml")
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideInt(lookup func(string) (string, bool), key string, target *int) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(lookup func(string) (string, bool), key string, target *bool) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = b
	return nil
}
