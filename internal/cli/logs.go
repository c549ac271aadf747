// logs.go implements the "dockhand logs" command: stream merged,
// timestamped, per-container-labeled logs from multiple containers
// concurrently.
//
// One pump runs per container (see internal/logstream); this command
// owns the receive end of the shared stream and prints lines in arrival
// order until every pump has finished or the user interrupts.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/config"
	"github.com/mmr-tortoise/dockhand/internal/docker"
	"github.com/mmr-tortoise/dockhand/internal/logstream"
	"github.com/mmr-tortoise/dockhand/internal/model"
)

// logsFlags holds the flag values for the logs command.
type logsFlags struct {
	// tail is the number of historical lines per container before
	// following. Zero-valued means "use the configured default".
	tail int

	// stack targets all containers of a compose project by label.
	stack string

	// composeFile derives the stack name from a compose file instead
	// of requiring it on the command line.
	composeFile string
}

// NewLogsCommand creates the "logs" cobra command.
func NewLogsCommand() *cobra.Command {
	flags := &logsFlags{}

	cmd := &cobra.Command{
		Use:   "logs [<container>...]",
		Short: "Stream logs from containers concurrently",
		Long: `Stream merged, timestamped logs from one or more containers.

Each line is labeled with the container's resolved name. Containers can
be given by id or name, targeted as a whole compose stack with --stack,
or derived from a compose file with --compose-file. Streaming continues
until interrupted (Ctrl-C).

Examples:
  dockhand logs 3f4a9c21b8d0 api-1
  dockhand logs --stack myproject --tail 100
  dockhand logs --compose-file deploy/docker-compose.yml`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.tail, "tail", -1,
		"Historical lines per container before following (default from config)")
	cmd.Flags().StringVar(&flags.stack, "stack", "", "Stream all containers of a compose stack")
	cmd.Flags().StringVar(&flags.composeFile, "compose-file", "",
		"Derive the stack from a compose file")

	return cmd
}

// runLogs resolves the target set, verifies the daemon is reachable,
// then starts one pump per container and drains the shared stream.
func runLogs(ctx context.Context, args []string, flags *logsFlags) error {
	refs, err := resolveLogTargets(ctx, args, flags)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return model.NewCLIError(model.ExitContainerNotFound, "no containers to stream")
	}

	// One daemon ping up front: a stopped daemon should produce a single
	// clear error, not one launch failure line per container.
	if err := preflight(ctx); err != nil {
		return err
	}

	tail := flags.tail
	if tail < 0 {
		tail = cfg.Tail
	}
	opts := logstream.Options{
		Tail:        tail,
		Colored:     colorEnabled,
		StopTimeout: cfg.StopTimeout,
	}

	stream := logstream.New()

	// An interrupt stops the stream; the stop cascades into every
	// reader goroutine and subprocess (see internal/logstream).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Debug("interrupt received, stopping log stream")
		stream.Stop()
	}()

	for _, ref := range refs {
		stream.Go(func() {
			logstream.Pump(eng, ref, opts, stream)
		})
	}
	stream.CloseWhenDone()

	// Drain returns only after every pump has unwound and the channel
	// is closed, so this is also the join point for all pump goroutines.
	stream.Drain(os.Stdout)
	return nil
}

// resolveLogTargets turns positional args and stack flags into container
// refs. Positional args are treated as ids so their display names get
// resolved; stack members are resolved to names up front.
func resolveLogTargets(ctx context.Context, args []string, flags *logsFlags) ([]model.ContainerRef, error) {
	var refs []model.ContainerRef
	for _, arg := range args {
		refs = append(refs, model.RefByID(arg))
	}

	stack := flags.stack
	if flags.composeFile != "" {
		if stack != "" {
			return nil, model.NewCLIError(model.ExitGeneralError,
				"specify either --stack or --compose-file, not both")
		}
		name, err := config.ComposeProjectName(flags.composeFile)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				"failed to resolve compose project", err)
		}
		stack = name
	}

	if stack != "" {
		names, err := eng.StackContainerNames(ctx, stack)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitDockerNotRunning,
				"failed to resolve stack containers", err)
		}
		for _, name := range names {
			refs = append(refs, model.RefByName(name))
		}
	}

	return refs, nil
}

// preflight pings the Docker daemon once via the SDK client.
func preflight(ctx context.Context) error {
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}
	if version, err := cli.ServerVersion(ctx); err == nil {
		log.Debug("docker daemon reachable", "version", version)
	}
	return nil
}
