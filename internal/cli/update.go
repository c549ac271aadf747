// update.go implements the "dockhand update" command: pull the image of
// each given container and report whether a newer image was downloaded.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/model"
	"github.com/mmr-tortoise/dockhand/internal/term"
)

// NewUpdateCommand creates the "update" cobra command.
func NewUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update <container>...",
		Short: "Pull fresh images and report update availability",
		Long: `Pull the image of each given container and report whether a newer
image was actually downloaded, as opposed to the image already being up
to date.

Examples:
  dockhand update nginx-1
  dockhand update api-1 worker-1`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), args)
		},
	}
}

// runUpdate pulls the image for each container in turn, echoing pull
// progress, then prints a per-container verdict.
func runUpdate(ctx context.Context, names []string) error {
	if err := preflight(ctx); err != nil {
		return err
	}

	for _, name := range names {
		image, err := eng.ImageName(ctx, name)
		if err != nil {
			return model.WrapCLIError(model.ExitContainerNotFound,
				fmt.Sprintf("failed to resolve image for container %q", name), err)
		}

		notice(term.Cyan, fmt.Sprintf("Pulling image for %s: %s", name, image))

		updated, err := eng.PullImage(image, os.Stdout)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to pull image %q", image), err)
		}

		if updated {
			notice(term.Green, fmt.Sprintf("Updated %s", name))
		} else {
			fmt.Printf("Already up to date: %s\n", name)
		}
	}
	return nil
}
