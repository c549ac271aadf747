package logstream

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/dockhand/internal/engine"
	"github.com/mmr-tortoise/dockhand/internal/model"
)

// testOptions are the pump options used throughout these tests: plain
// format and a generous shutdown timeout.
var testOptions = Options{Tail: 10, Colored: false, StopTimeout: 5 * time.Second}

// writeFakeRuntime installs a shell script that stands in for the
// container runtime, serving the "inspect" and "logs" invocations the
// pump performs. This is the long-running dummy log generator used in
// place of a real container.
func writeFakeRuntime(t *testing.T, script string) *engine.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-runtime")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return engine.New(path)
}

// drainAll runs fn as the sole pump and returns every line the stream
// delivered.
func drainAll(t *testing.T, s *Stream, fn func()) []string {
	t.Helper()
	s.Go(fn)
	s.CloseWhenDone()

	var lines []string
	done := make(chan struct{})
	go func() {
		for line := range s.Lines() {
			lines = append(lines, line)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("stream did not close")
	}
	return lines
}

// TestPump_ResolvesDisplayName verifies that lines from a pump given a
// raw id all carry the resolved container name, never the raw id.
func TestPump_ResolvesDisplayName(t *testing.T) {
	eng := writeFakeRuntime(t, `
case "$1" in
inspect) printf '/web-1\n' ;;
logs) printf 'hello\n' ;;
esac`)

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByID("3f4a9c21b8d0"), testOptions, s)
	})

	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Contains(t, line, "| web-1]")
		assert.NotContains(t, line, "3f4a9c21b8d0")
	}
}

// TestPump_NameFallback verifies that an unresolvable id falls back to
// the raw identifier verbatim and the pump still streams.
func TestPump_NameFallback(t *testing.T) {
	eng := writeFakeRuntime(t, `
case "$1" in
inspect) echo 'no such container' >&2; exit 1 ;;
logs) printf 'hello\n' ;;
esac`)

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByID("3f4a9c21b8d0"), testOptions, s)
	})

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "| 3f4a9c21b8d0]")
	assert.True(t, strings.HasSuffix(lines[0], "] hello"))
}

// TestPump_NameRefPassesThrough verifies that a name ref skips
// resolution entirely.
func TestPump_NameRefPassesThrough(t *testing.T) {
	eng := writeFakeRuntime(t, `
case "$1" in
inspect) echo 'inspect should not be called' >&2; exit 1 ;;
logs) printf 'hello\n' ;;
esac`)

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByName("api-1"), testOptions, s)
	})

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "| api-1]")
}

// TestPump_LaunchFailure verifies that a pump whose log subprocess
// cannot start emits exactly one formatted error line and returns.
func TestPump_LaunchFailure(t *testing.T) {
	eng := engine.New(filepath.Join(t.TempDir(), "missing-runtime"))

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByName("web-1"), testOptions, s)
	})

	require.Len(t, lines, 1)
	assert.Equal(t, FormatLaunchError("web-1", false), lines[0])
}

// TestPump_BothStreamsExactlyOnce verifies the concurrent-send
// property: interleaved stdout and stderr readers of the same pump
// never corrupt or drop a line — every line written by the subprocess
// appears in the drain exactly once.
func TestPump_BothStreamsExactlyOnce(t *testing.T) {
	const perStream = 100

	eng := writeFakeRuntime(t, fmt.Sprintf(`
case "$1" in
logs)
  i=0
  while [ $i -lt %d ]; do
    echo "out-$i"
    echo "err-$i" >&2
    i=$((i+1))
  done
  ;;
esac`, perStream))

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByName("web-1"), testOptions, s)
	})

	require.Len(t, lines, 2*perStream)

	seen := make(map[string]int)
	for _, line := range lines {
		// Strip the "[ts | name] " prefix down to the raw payload.
		idx := strings.Index(line, "] ")
		require.Positive(t, idx)
		seen[line[idx+2:]]++
	}
	for i := 0; i < perStream; i++ {
		assert.Equal(t, 1, seen[fmt.Sprintf("out-%d", i)])
		assert.Equal(t, 1, seen[fmt.Sprintf("err-%d", i)])
	}
}

// TestPump_PerStreamOrder verifies that lines from a single stream of a
// single container arrive in order, regardless of how they interleave
// with the other stream.
func TestPump_PerStreamOrder(t *testing.T) {
	eng := writeFakeRuntime(t, `
case "$1" in
logs)
  i=0
  while [ $i -lt 50 ]; do
    printf 'out-%03d\n' $i
    i=$((i+1))
  done
  ;;
esac`)

	s := New()
	lines := drainAll(t, s, func() {
		Pump(eng, model.RefByName("web-1"), testOptions, s)
	})

	require.Len(t, lines, 50)
	var payloads []string
	for _, line := range lines {
		payloads = append(payloads, line[strings.Index(line, "] ")+2:])
	}
	assert.IsIncreasing(t, payloads)
}

// TestPump_StopCascades verifies that stopping the receiver while pumps
// are actively streaming terminates every reader and reaps the
// subprocess within a bounded time. The fake runtime never exits on its
// own, so the only way the stream can close is the stop cascading into
// the pump's subprocess kill.
func TestPump_StopCascades(t *testing.T) {
	eng := writeFakeRuntime(t, `
case "$1" in
logs)
  while true; do
    echo tick
    echo tock >&2
    sleep 0.01
  done
  ;;
esac`)

	s := New()
	s.Go(func() {
		Pump(eng, model.RefByName("web-1"), testOptions, s)
	})
	s.CloseWhenDone()

	// Consume a few lines to prove the pump is live, then stop.
	for i := 0; i < 5; i++ {
		select {
		case _, ok := <-s.Lines():
			require.True(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("pump produced no lines")
		}
	}
	s.Stop()

	// The channel must close once the pump has unwound: readers exited,
	// subprocess terminated and reaped.
	deadline := time.After(10 * time.Second)
	for {
		select {
		case _, ok := <-s.Lines():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("pump did not unwind after Stop")
		}
	}
}
