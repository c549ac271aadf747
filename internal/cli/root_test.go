// root_test.go contains unit tests for the pure helpers of the cli
// package: color mode resolution and table cell formatting. These run
// without a Docker daemon.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/dockhand/internal/config"
)

// TestResolveColor verifies that the terminal probe is consulted only
// in auto mode; always and never are unconditional.
func TestResolveColor(t *testing.T) {
	tty := func() bool { return true }
	pipe := func() bool { return false }

	assert.True(t, resolveColor(config.ColorAlways, pipe), "always ignores the probe")
	assert.False(t, resolveColor(config.ColorNever, tty), "never ignores the probe")
	assert.True(t, resolveColor(config.ColorAuto, tty))
	assert.False(t, resolveColor(config.ColorAuto, pipe))
}

// TestDash verifies empty table cells render as a dash.
func TestDash(t *testing.T) {
	assert.Equal(t, "-", dash(""))
	assert.Equal(t, "running", dash("running"))
}
