// Package engine wraps invocations of the container-runtime binary
// (docker by default) for the dockhand CLI.
//
// One-shot queries (ps, rm, inspect, stats) run to completion and return
// their captured output. Streaming invocations (logs --follow, pull) go
// through the Proc subprocess adapter in proc.go, which hands the caller
// piped output streams and a kill/wait lifecycle.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mmr-tortoise/dockhand/internal/model"
)

// DefaultBinary is the container-runtime executable used when no override
// is configured.
const DefaultBinary = "docker"

// inspectRecordFormat produces the comma-separated record consumed by
// ParseInspect: name,status,restart_policy,health,start_time,ports.
// Containers without a healthcheck report "none" for health.
const inspectRecordFormat = "{{.Name}},{{.State.Status}},{{.HostConfig.RestartPolicy.Name}}," +
	"{{if .State.Health}}{{.State.Health.Status}}{{else}}none{{end}},{{.State.StartedAt}},{{.Config.ExposedPorts}}"

// statsRecordFormat produces the whitespace-separated record consumed by
// ParseStats: name cpu memory.
const statsRecordFormat = "{{.Name}} {{.CPUPerc}} {{.MemUsage}}"

// Engine invokes a container-runtime binary as child processes.
// It holds no connection state; each method is an independent invocation.
type Engine struct {
	bin string
}

// New creates an Engine for the given runtime binary. An empty name
// falls back to DefaultBinary.
func New(bin string) *Engine {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Engine{bin: bin}
}

// Binary returns the configured runtime executable name.
func (e *Engine) Binary() string {
	return e.bin
}

// ListContainers returns the ids of all running containers (ps -q).
func (e *Engine) ListContainers(ctx context.Context) ([]string, error) {
	out, err := e.run(ctx, "ps", "-q")
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return strings.Fields(out), nil
}

// StackContainerNames returns the resolved names of all running containers
// belonging to a compose stack, discovered via the compose project label.
// Ids whose names cannot be resolved are silently dropped, matching the
// lookup-is-best-effort rule used everywhere else.
func (e *Engine) StackContainerNames(ctx context.Context, stack string) ([]string, error) {
	out, err := e.run(ctx, "ps", "-q", "--filter", "label=com.docker.compose.project="+stack)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers in stack %q: %w", stack, err)
	}

	var names []string
	for _, id := range strings.Fields(out) {
		name, err := e.ContainerName(ctx, id)
		if err != nil {
			log.Debug("skipping unresolvable stack container", "stack", stack, "id", id, "error", err)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// RemoveContainers force-removes the given containers (rm -f).
func (e *Engine) RemoveContainers(ctx context.Context, ids []string) error {
	args := append([]string{"rm", "-f"}, ids...)
	if _, err := e.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to remove containers: %w", err)
	}
	return nil
}

// ContainerName resolves a container id to its name via inspect.
// Docker names carry a leading path separator, which is stripped.
func (e *Engine) ContainerName(ctx context.Context, id string) (string, error) {
	out, err := e.run(ctx, "inspect", "--format", "{{.Name}}", id)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %q: %w", id, err)
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "/"), nil
}

// ImageName returns the image a container was created from.
func (e *Engine) ImageName(ctx context.Context, name string) (string, error) {
	out, err := e.run(ctx, "inspect", "--format", "{{.Config.Image}}", name)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// InspectRecord fetches and parses the combined inspect record for a
// container: name, status, restart policy, health, uptime and ports.
func (e *Engine) InspectRecord(ctx context.Context, name string) (model.InspectInfo, error) {
	out, err := e.run(ctx, "inspect", "--format", inspectRecordFormat, name)
	if err != nil {
		return model.InspectInfo{}, fmt.Errorf("failed to inspect container %q: %w", name, err)
	}
	return ParseInspect(strings.TrimSpace(out))
}

// StatsRecord fetches and parses a one-shot stats sample for a container.
func (e *Engine) StatsRecord(ctx context.Context, name string) (model.StatsInfo, error) {
	out, err := e.run(ctx, "stats", "--no-stream", "--format", statsRecordFormat, name)
	if err != nil {
		return model.StatsInfo{}, fmt.Errorf("failed to read stats for container %q: %w", name, err)
	}
	return ParseStats(strings.TrimSpace(out))
}

// StartLogs launches "logs <name> --tail <n> --follow" with both output
// streams piped. The returned Proc is owned by the caller, which must
// terminate and wait it on every exit path.
func (e *Engine) StartLogs(name string, tail int) (*Proc, error) {
	args := []string{"logs", name, "--tail", strconv.Itoa(tail), "--follow"}
	return StartProc(e.bin, args, ProcOptions{CaptureStdout: true, CaptureStderr: true})
}

// run executes a one-shot runtime command and returns its stdout.
// On failure the runtime's stderr is folded into the returned error so
// the user sees the actual daemon complaint, not just an exit status.
func (e *Engine) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.bin, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	log.Debug("running runtime command", "bin", e.bin, "args", args)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", commandLine(e.bin, args), err, msg)
		}
		return "", fmt.Errorf("%s: %w", commandLine(e.bin, args), err)
	}
	return out.String(), nil
}
