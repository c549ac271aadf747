// Package term provides terminal color handling for dockhand output.
//
// Colors are a closed enumeration mapped to fixed ANSI escape sequences
// through a pure lookup — there is no process-wide color state. Whether
// color is emitted at all is decided once by the caller (see IsTerminal);
// nothing in this package inspects the environment.
package term

// Reset is the universal ANSI reset sequence. Every colored segment is
// closed with Reset regardless of nesting.
const Reset = "\x1b[0m"

// Color is a semantic terminal color. The zero value is Red.
type Color int

const (
	// Red marks error lines.
	Red Color = iota

	// Green marks container name tags in log output.
	Green

	// Blue is available for informational output.
	Blue

	// Yellow marks destructive-action warnings.
	Yellow

	// Magenta marks listing-action notices.
	Magenta

	// Cyan marks timestamps and informational notices.
	Cyan

	// White is available for emphasis.
	White
)

// Code returns the bold ANSI escape sequence for the color.
func (c Color) Code() string {
	switch c {
	case Red:
		return "\x1b[1;31m"
	case Green:
		return "\x1b[1;32m"
	case Blue:
		return "\x1b[1;34m"
	case Yellow:
		return "\x1b[1;33m"
	case Magenta:
		return "\x1b[1;35m"
	case Cyan:
		return "\x1b[1;36m"
	case White:
		return "\x1b[1;37m"
	default:
		return ""
	}
}

// Paint wraps text in the color's escape sequence, closed with Reset.
func Paint(c Color, text string) string {
	return c.Code() + text + Reset
}
