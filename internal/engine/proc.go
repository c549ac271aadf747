// proc.go implements the subprocess adapter used for streaming runtime
// invocations ("logs --follow", "pull").
//
// A Proc wraps a started child process with its output streams piped.
// The lifecycle contract is kill-then-reap on every exit path: callers
// must invoke Terminate followed by Wait (or WaitTimeout) once they are
// done reading, so no process or descriptor is ever leaked.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// killGrace is the extra wait applied after the SIGKILL escalation in
// WaitTimeout before giving up on reaping the child.
const killGrace = 2 * time.Second

// ErrWaitTimeout is returned by WaitTimeout when the child process could
// not be reaped within the allowed duration, even after escalating to
// SIGKILL. The child may still be wedged in the kernel; this is reported
// rather than hidden.
var ErrWaitTimeout = errors.New("timed out waiting for subprocess to exit")

// LaunchError indicates a subprocess could not be started. It is reported
// once and never retried; for a log pump it is fatal to that pump only.
type LaunchError struct {
	// Command is the full command line that failed to start.
	Command string

	// Err is the underlying start error.
	Err error
}

// Error satisfies the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ProcOptions selects which output streams of the child are captured.
// An uncaptured stream is attached to the parent's corresponding file,
// so a caller that only reads stdout (the pull case) cannot deadlock on
// an unread stderr pipe.
type ProcOptions struct {
	CaptureStdout bool
	CaptureStderr bool
}

// Proc is a running subprocess with piped output streams. The handle is
// exclusively owned by its creator and must not be shared.
type Proc struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser

	termOnce sync.Once
	waitOnce sync.Once
	waited   chan struct{}
	waitErr  error
}

// StartProc starts bin with the given arguments and the streams selected
// in opts piped. On failure it returns a *LaunchError; there is no
// process to clean up in that case.
func StartProc(bin string, args []string, opts ProcOptions) (*Proc, error) {
	cmd := exec.Command(bin, args...)

	p := &Proc{cmd: cmd, waited: make(chan struct{})}

	if opts.CaptureStdout {
		pipe, err := cmd.StdoutPipe()
		if err != nil {
			return nil, &LaunchError{Command: commandLine(bin, args), Err: err}
		}
		p.stdout = pipe
	} else {
		cmd.Stdout = os.Stdout
	}

	if opts.CaptureStderr {
		pipe, err := cmd.StderrPipe()
		if err != nil {
			return nil, &LaunchError{Command: commandLine(bin, args), Err: err}
		}
		p.stderr = pipe
	} else {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Command: commandLine(bin, args), Err: err}
	}

	log.Debug("started runtime subprocess", "bin", bin, "args", args, "pid", cmd.Process.Pid)
	return p, nil
}

// Stdout returns the piped stdout stream, or nil when stdout was not
// captured. Ownership of the reader passes to the caller.
func (p *Proc) Stdout() io.ReadCloser {
	return p.stdout
}

// Stderr returns the piped stderr stream, or nil when stderr was not
// captured.
func (p *Proc) Stderr() io.ReadCloser {
	return p.stderr
}

// Terminate kills the child process. It is best-effort and idempotent:
// errors are ignored since the process may have already exited. Callers
// must still Wait afterwards to reap the child.
func (p *Proc) Terminate() {
	p.termOnce.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
	})
}

// Wait blocks until the child has fully exited and reaps it. It is safe
// to call from multiple goroutines; every caller observes the same result.
func (p *Proc) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.cmd.Wait()
		close(p.waited)
	})
	<-p.waited
	return p.waitErr
}

// WaitTimeout waits up to d for the child to exit. If the deadline
// passes it escalates to SIGKILL and waits a short grace period; if the
// child still cannot be reaped it returns ErrWaitTimeout. A runtime that
// survives SIGKILL (wedged in the kernel) leaves the reaping goroutine
// behind; that residual hang is accepted and surfaced, not hidden.
func (p *Proc) WaitTimeout(d time.Duration) error {
	go func() { _ = p.Wait() }()

	select {
	case <-p.waited:
		return p.waitErr
	case <-time.After(d):
	}

	log.Warn("subprocess did not exit in time, escalating to SIGKILL",
		"pid", p.cmd.Process.Pid, "timeout", d)
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}

	select {
	case <-p.waited:
		return p.waitErr
	case <-time.After(killGrace):
		return ErrWaitTimeout
	}
}

// commandLine renders a command and its arguments for error messages.
func commandLine(bin string, args []string) string {
	if len(args) == 0 {
		return bin
	}
	return bin + " " + strings.Join(args, " ")
}
