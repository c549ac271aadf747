package term

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether stdout is attached to a terminal.
// The Cygwin/MSYS check covers pty-backed terminals on Windows where the
// plain isatty probe returns false.
//
// This probe is performed once at the CLI layer to pick the color mode;
// the formatters themselves never autodetect.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
