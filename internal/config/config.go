// Package config loads dockhand's configuration.
//
// Sources, in increasing precedence:
//
//  1. built-in defaults
//  2. the config file (JSONC, comments allowed) at
//     $DOCKHAND_CONFIG or <user config dir>/dockhand/config.jsonc
//  3. a .env file in the working directory, if present
//  4. DOCKHAND_* environment variables
//
// The config file uses JSONC so it can carry comments; it is stripped
// with github.com/tidwall/jsonc and then parsed with encoding/json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/dockhand/internal/engine"
)

// ColorMode controls when ANSI color is emitted.
type ColorMode string

const (
	// ColorAuto emits color only when stdout is a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways emits color unconditionally.
	ColorAlways ColorMode = "always"

	// ColorNever disables color entirely.
	ColorNever ColorMode = "never"
)

// ParseColorMode validates a color mode string.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("invalid color mode %q (valid: auto, always, never)", s)
	}
}

// Config holds the resolved settings for one invocation.
type Config struct {
	// Runtime is the container-runtime executable to invoke.
	Runtime string

	// Tail is the default number of historical log lines per container.
	Tail int

	// Color selects the color mode before the terminal probe is applied.
	Color ColorMode

	// StopTimeout bounds the wait for a log subprocess to exit on
	// shutdown before escalating to SIGKILL.
	StopTimeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Runtime:     engine.DefaultBinary,
		Tail:        50,
		Color:       ColorAuto,
		StopTimeout: 5 * time.Second,
	}
}

// fileConfig is the JSON shape of the config file. Durations are plain
// seconds so the file stays trivial to write by hand.
type fileConfig struct {
	Runtime            *string `json:"runtime"`
	Tail               *int    `json:"tail"`
	Color              *string `json:"color"`
	StopTimeoutSeconds *int    `json:"stopTimeoutSeconds"`
}

// Load resolves the configuration from all sources.
func Load() (Config, error) {
	cfg := Default()

	// .env is optional; a missing file is the common case.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	path, explicit := configPath()
	if err := loadFile(&cfg, path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, err
		}
		// Default path with no file present — defaults stand.
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configPath returns the config file location and whether it was set
// explicitly via DOCKHAND_CONFIG (in which case a missing file is an
// error rather than a silent fallback).
func configPath() (string, bool) {
	if p := os.Getenv("DOCKHAND_CONFIG"); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "dockhand", "config.jsonc"), false
}

// loadFile merges the config file at path into cfg. JSONC comments are
// stripped before parsing.
func loadFile(cfg *Config, path string) error {
	if path == "" {
		return os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Runtime != nil {
		cfg.Runtime = *fc.Runtime
	}
	if fc.Tail != nil {
		cfg.Tail = *fc.Tail
	}
	if fc.Color != nil {
		mode, err := ParseColorMode(*fc.Color)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.Color = mode
	}
	if fc.StopTimeoutSeconds != nil {
		cfg.StopTimeout = time.Duration(*fc.StopTimeoutSeconds) * time.Second
	}

	log.Debug("loaded config file", "path", path)
	return nil
}

// applyEnv merges DOCKHAND_* environment variables into cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DOCKHAND_RUNTIME"); v != "" {
		cfg.Runtime = v
	}
	if v := os.Getenv("DOCKHAND_TAIL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid DOCKHAND_TAIL %q: expected a non-negative integer", v)
		}
		cfg.Tail = n
	}
	if v := os.Getenv("DOCKHAND_COLOR"); v != "" {
		mode, err := ParseColorMode(v)
		if err != nil {
			return fmt.Errorf("invalid DOCKHAND_COLOR: %w", err)
		}
		cfg.Color = mode
	}
	if v := os.Getenv("DOCKHAND_STOP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid DOCKHAND_STOP_TIMEOUT %q: expected a duration like 5s", v)
		}
		cfg.StopTimeout = d
	}
	return nil
}
