package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeRuntime installs a shell script that stands in for the
// container runtime binary, so Engine invocations can be exercised
// without a Docker daemon.
func writeFakeRuntime(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-runtime")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

// TestEngine_ListContainers verifies that ps output is split into ids
// on whitespace, tolerating trailing newlines.
func TestEngine_ListContainers(t *testing.T) {
	bin := writeFakeRuntime(t, `printf '3f4a9c21b8d0\n7e2b1d9aa410\n'`)
	eng := New(bin)

	ids, err := eng.ListContainers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3f4a9c21b8d0", "7e2b1d9aa410"}, ids)
}

// TestEngine_ListContainers_Empty verifies that no running containers
// yields an empty id list, not an error.
func TestEngine_ListContainers_Empty(t *testing.T) {
	bin := writeFakeRuntime(t, `exit 0`)
	eng := New(bin)

	ids, err := eng.ListContainers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// TestEngine_ContainerName verifies id-to-name resolution, including
// stripping the leading path separator that Docker prepends to names.
func TestEngine_ContainerName(t *testing.T) {
	bin := writeFakeRuntime(t, `printf '/web-1\n'`)
	eng := New(bin)

	name, err := eng.ContainerName(context.Background(), "3f4a9c21b8d0")
	require.NoError(t, err)
	assert.Equal(t, "web-1", name)
}

// TestEngine_ContainerName_Failure verifies that a failing inspect is
// surfaced with the runtime's stderr folded into the error.
func TestEngine_ContainerName_Failure(t *testing.T) {
	bin := writeFakeRuntime(t, `echo 'Error: No such container' >&2; exit 1`)
	eng := New(bin)

	_, err := eng.ContainerName(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such container")
}

// TestEngine_StackContainerNames verifies that stack members are
// resolved to names and unresolvable ids are dropped rather than
// failing the whole lookup.
func TestEngine_StackContainerNames(t *testing.T) {
	// ps returns two ids; inspect resolves the first and fails on the
	// second.
	bin := writeFakeRuntime(t, `
case "$1" in
ps) printf 'aaa111\nbbb222\n' ;;
inspect)
  if [ "$4" = "aaa111" ]; then printf '/stack-web-1\n'; else exit 1; fi ;;
esac`)
	eng := New(bin)

	names, err := eng.StackContainerNames(context.Background(), "mystack")
	require.NoError(t, err)
	assert.Equal(t, []string{"stack-web-1"}, names)
}

// TestEngine_DefaultBinary verifies the empty-name fallback.
func TestEngine_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, New("").Binary())
	assert.Equal(t, "podman", New("podman").Binary())
}
