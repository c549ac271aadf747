// list.go implements the "dockhand list" command: show the ids and
// resolved names of all running containers.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/model"
	"github.com/mmr-tortoise/dockhand/internal/term"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running containers",
		Long: `List all running containers with their ids and resolved names.

Examples:
  dockhand list
  dockhand list --runtime podman`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}
}

// runList queries the runtime for running container ids, resolves each
// id to a name where possible, and prints a two-column table.
func runList(ctx context.Context) error {
	notice(term.Magenta, "Listing docker containers...")

	ids, err := eng.ListContainers(ctx)
	if err != nil {
		return model.WrapCLIError(model.ExitDockerNotRunning, "failed to list containers", err)
	}

	if len(ids) == 0 {
		fmt.Println("No running containers.")
		return nil
	}

	fmt.Printf("%-14s %s\n", "CONTAINER ID", "NAME")
	for _, id := range ids {
		// Name resolution is best-effort; an unresolvable id is shown raw.
		name, err := eng.ContainerName(ctx, id)
		if err != nil || name == "" {
			log.Debug("name resolution failed", "id", id, "error", err)
			name = id
		}
		fmt.Printf("%-14s %s\n", id, name)
	}
	return nil
}
