package logstream

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mmr-tortoise/dockhand/internal/engine"
	"github.com/mmr-tortoise/dockhand/internal/model"
)

// resolveTimeout bounds the name lookup that precedes streaming. A slow
// daemon falls back to the raw identifier rather than stalling the pump.
const resolveTimeout = 10 * time.Second

// Options configures the pumps of one invocation.
type Options struct {
	// Tail is the number of historical lines emitted before following.
	Tail int

	// Colored selects the colorized line format. The decision is made
	// once by the CLI layer and threaded through; pumps never autodetect.
	Colored bool

	// StopTimeout bounds the wait for the log subprocess to exit after
	// termination, before escalating to SIGKILL.
	StopTimeout time.Duration
}

// Pump produces the labeled log feed for a single container, sending
// formatted lines into s until the subprocess exits or s is stopped.
//
// A pump never fails over a naming problem: if the ref is an id whose
// name cannot be resolved, the raw identifier is used verbatim. If the
// log subprocess cannot be launched, exactly one formatted error line is
// emitted and the pump returns. On every other path the subprocess is
// terminated and reaped after both stream readers have finished.
func Pump(eng *engine.Engine, ref model.ContainerRef, opts Options, s *Stream) {
	name := displayName(eng, ref)

	proc, err := eng.StartLogs(name, opts.Tail)
	if err != nil {
		log.Debug("log subprocess launch failed", "container", name, "error", err)
		s.Send(FormatLaunchError(name, opts.Colored))
		return
	}

	// The stop watcher kills the subprocess when the consumer stops the
	// stream. Without it, a reader blocked on a silent container would
	// only notice the stop at its next line; killing the process closes
	// both pipes and releases the readers through EOF.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			proc.Terminate()
		case <-watchDone:
		}
	}()

	var readers sync.WaitGroup
	for _, r := range []io.ReadCloser{proc.Stdout(), proc.Stderr()} {
		if r == nil {
			continue
		}
		readers.Add(1)
		go func(r io.Reader) {
			defer readers.Done()
			pumpLines(r, name, opts.Colored, s)
		}(r)
	}
	readers.Wait()
	close(watchDone)

	proc.Terminate()
	if err := proc.WaitTimeout(opts.StopTimeout); err != nil {
		log.Warn("log subprocess did not shut down cleanly", "container", name, "error", err)
	}
}

// pumpLines reads text lines from one output stream as they arrive,
// stamps and formats each one, and sends it into the stream. A refused
// send is the cancellation signal and ends the reader immediately.
// Lines pass through as raw bytes with no decode step, so malformed
// encodings are forwarded rather than dropped; only a genuine read
// error (or EOF) ends the stream.
func pumpLines(r io.Reader, name string, colored bool, s *Stream) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := FormatLine(Timestamp(time.Now()), name, scanner.Text(), colored)
		if !s.Send(line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debug("log stream read ended", "container", name, "error", err)
	}
}

// displayName resolves the ref to the name shown on every line. Name
// refs pass through untouched; id refs are looked up with a bounded
// inspect call and fall back to the raw id on any failure.
func displayName(eng *engine.Engine, ref model.ContainerRef) string {
	if !ref.IsID {
		return ref.Value
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	name, err := eng.ContainerName(ctx, ref.Value)
	if err != nil || name == "" {
		log.Debug("name resolution failed, using raw id", "id", ref.Value, "error", err)
		return ref.Value
	}
	return name
}
