package logstream

import (
	"fmt"
	"time"

	"github.com/mmr-tortoise/dockhand/internal/term"
)

// timestampLayout is the local-time, second-resolution format stamped
// onto every log line.
const timestampLayout = "2006-01-02T15:04:05"

// Timestamp renders t in the log line timestamp format.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// FormatLine renders one display line: "[<ts> | <name>] <line>".
// In colored mode the timestamp is wrapped in cyan and the container
// name in green, each closed with the reset sequence; the raw line is
// never touched by color codes. The two modes share an identical
// textual layout.
func FormatLine(ts, name, line string, colored bool) string {
	if colored {
		return fmt.Sprintf("[%s | %s] %s", term.Paint(term.Cyan, ts), term.Paint(term.Green, name), line)
	}
	return fmt.Sprintf("[%s | %s] %s", ts, name, line)
}

// FormatLaunchError renders the single error line a pump emits when its
// log subprocess cannot be started, red-wrapped in colored mode.
func FormatLaunchError(name string, colored bool) string {
	msg := fmt.Sprintf("[ERROR] - Failed to log %s", name)
	if colored {
		return term.Paint(term.Red, msg)
	}
	return msg
}
