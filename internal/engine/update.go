// update.go implements the image update routine: pull a container's
// image and report whether a newer image was actually downloaded, as
// opposed to an "already up to date" pull.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// updatedMarker is the pull output line fragment that distinguishes a
// real download from an up-to-date image.
const updatedMarker = "Status: Downloaded newer image"

// PullImage pulls an image, echoing the runtime's progress output to w
// line by line, and reports whether a newer image was downloaded.
//
// Only stdout is piped; the runtime's own stderr passes straight through
// to the user. The subprocess is terminated and reaped on every return
// path.
func (e *Engine) PullImage(image string, w io.Writer) (bool, error) {
	proc, err := StartProc(e.bin, []string{"pull", image}, ProcOptions{CaptureStdout: true})
	if err != nil {
		return false, fmt.Errorf("failed to pull image %q: %w", image, err)
	}
	defer func() {
		proc.Terminate()
		_ = proc.Wait()
	}()

	return scanPullOutput(proc.Stdout(), w), nil
}

// scanPullOutput copies pull progress lines from r to w while scanning
// each line for the downloaded-newer-image marker.
func scanPullOutput(r io.Reader, w io.Writer) bool {
	updated := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(w, line)
		if strings.Contains(line, updatedMarker) {
			updated = true
		}
	}
	return updated
}
