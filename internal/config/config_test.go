package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temp dir and points
// DOCKHAND_CONFIG at it for the duration of the test.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DOCKHAND_CONFIG", path)
}

// clearEnv blanks every DOCKHAND_* override so tests see only the
// sources they set up themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DOCKHAND_CONFIG", "DOCKHAND_RUNTIME", "DOCKHAND_TAIL", "DOCKHAND_COLOR", "DOCKHAND_STOP_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies the built-in defaults when no config
// sources are present.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	// Point the config path at a directory with no config file.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docker", cfg.Runtime)
	assert.Equal(t, 50, cfg.Tail)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 5*time.Second, cfg.StopTimeout)
}

// TestLoad_ConfigFile verifies that a JSONC config file, comments and
// all, overrides the defaults.
func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `{
  // runtime to drive
  "runtime": "podman",
  "tail": 200, // more history
  "color": "never",
  "stopTimeoutSeconds": 12,
}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "podman", cfg.Runtime)
	assert.Equal(t, 200, cfg.Tail)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 12*time.Second, cfg.StopTimeout)
}

// TestLoad_PartialConfigFile verifies that keys absent from the file
// keep their defaults.
func TestLoad_PartialConfigFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `{"tail": 10}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docker", cfg.Runtime)
	assert.Equal(t, 10, cfg.Tail)
	assert.Equal(t, ColorAuto, cfg.Color)
}

// TestLoad_EnvBeatsFile verifies the precedence order: environment
// variables override the config file.
func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `{"runtime": "podman", "tail": 200}`)
	t.Setenv("DOCKHAND_RUNTIME", "nerdctl")
	t.Setenv("DOCKHAND_TAIL", "7")
	t.Setenv("DOCKHAND_STOP_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nerdctl", cfg.Runtime)
	assert.Equal(t, 7, cfg.Tail)
	assert.Equal(t, 30*time.Second, cfg.StopTimeout)
}

// TestLoad_InvalidValues verifies that malformed settings are reported
// rather than silently ignored.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name: "bad color in file",
			setup: func(t *testing.T) {
				writeConfig(t, `{"color": "rainbow"}`)
			},
		},
		{
			name: "bad tail in env",
			setup: func(t *testing.T) {
				t.Setenv("DOCKHAND_TAIL", "lots")
			},
		},
		{
			name: "negative tail in env",
			setup: func(t *testing.T) {
				t.Setenv("DOCKHAND_TAIL", "-1")
			},
		},
		{
			name: "bad color in env",
			setup: func(t *testing.T) {
				t.Setenv("DOCKHAND_COLOR", "sometimes")
			},
		},
		{
			name: "bad stop timeout in env",
			setup: func(t *testing.T) {
				t.Setenv("DOCKHAND_STOP_TIMEOUT", "soon")
			},
		},
		{
			name: "explicit config path missing",
			setup: func(t *testing.T) {
				t.Setenv("DOCKHAND_CONFIG", filepath.Join(t.TempDir(), "nope.jsonc"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			tt.setup(t)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestParseColorMode verifies color mode validation.
func TestParseColorMode(t *testing.T) {
	for _, valid := range []string{"auto", "always", "never"} {
		mode, err := ParseColorMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ColorMode(valid), mode)
	}

	_, err := ParseColorMode("")
	assert.Error(t, err)
	_, err = ParseColorMode("Always")
	assert.Error(t, err)
}
