package logstream

import (
	"fmt"
	"io"
	"sync"
)

// lineBuffer is the capacity of the fan-in channel. Producers that
// outrun the consumer park on the channel until space frees up or the
// stream is stopped; stopping always unblocks them immediately.
const lineBuffer = 256

// Stream is the multi-producer, single-consumer fan-in shared by all
// pumps of one invocation. Producers call Send from any goroutine; one
// consumer drains Lines (or Drain). Stopping the stream is the sole
// cancellation signal: after Stop, every Send returns false and any
// producer blocked in Send is released.
type Stream struct {
	lines chan string
	done  chan struct{}

	stopOnce  sync.Once
	closeOnce sync.Once
	pumps     sync.WaitGroup
}

// New creates an empty Stream ready for producers to attach.
func New() *Stream {
	return &Stream{
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}
}

// Send delivers a formatted line to the consumer. It returns false once
// the stream has been stopped, which tells the producer to cease
// reading and unwind; lines accepted before the stop are all delivered
// exactly once.
func (s *Stream) Send(line string) bool {
	// Refuse new lines after a stop even while buffer space remains, so
	// producers observe cancellation on their very next send.
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.lines <- line:
		return true
	case <-s.done:
		return false
	}
}

// Go runs fn as a tracked producer. The fan-in channel closes only
// after every tracked producer has returned, so the consumer's drain
// loop doubles as the join point for all pumps.
func (s *Stream) Go(fn func()) {
	s.pumps.Add(1)
	go func() {
		defer s.pumps.Done()
		fn()
	}()
}

// CloseWhenDone arranges for the fan-in channel to close once all
// tracked producers have exited. Call it exactly once, after the last
// Go. Without it the consumer would block forever on a drained channel.
func (s *Stream) CloseWhenDone() {
	s.closeOnce.Do(func() {
		go func() {
			s.pumps.Wait()
			close(s.lines)
		}()
	})
}

// Lines exposes the receive side for consumers that want their own loop.
func (s *Stream) Lines() <-chan string {
	return s.lines
}

// Drain prints every line to w in arrival order until all producers
// have finished and the channel is closed. When Drain returns, every
// pump has fully unwound.
func (s *Stream) Drain(w io.Writer) {
	for line := range s.lines {
		fmt.Fprintln(w, line)
	}
}

// Stop signals all producers to unwind. It is idempotent and safe to
// call from a signal handler goroutine. Producers already blocked in
// Send return immediately; pumps blocked on silent subprocesses are
// released by the pump's stop watcher killing the subprocess.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// Done exposes the stop signal for producers that need to watch it
// directly, such as the pump's subprocess watcher.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}
