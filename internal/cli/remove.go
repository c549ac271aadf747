// remove.go implements the "dockhand remove" command: force-remove the
// given containers, or every running container with --all.
//
// By default the command prompts for confirmation; --force skips the
// prompt for scripted use.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/model"
	"github.com/mmr-tortoise/dockhand/internal/term"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	// all targets every running container instead of positional args.
	all bool

	// force skips the interactive confirmation prompt.
	force bool
}

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:     "remove [<container>...]",
		Aliases: []string{"rm"},
		Short:   "Force-remove containers",
		Long: `Force-remove the given containers (by id or name).

With --all, every running container is removed. Unless --force is
specified, the command prompts for confirmation.

Examples:
  dockhand remove 3f4a9c21b8d0
  dockhand remove --all --force`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Remove all running containers")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

// runRemove resolves the target set, confirms with the user, then
// issues a single force-remove for all targets.
func runRemove(ctx context.Context, args []string, flags *removeFlags) error {
	if flags.all == (len(args) > 0) {
		return model.NewCLIError(model.ExitGeneralError,
			"specify either container ids or --all, not both")
	}

	targets := args
	if flags.all {
		ids, err := eng.ListContainers(ctx)
		if err != nil {
			return model.WrapCLIError(model.ExitDockerNotRunning, "failed to list containers", err)
		}
		if len(ids) == 0 {
			fmt.Println("No running containers.")
			return nil
		}
		targets = ids
	}

	if !flags.force {
		confirmed, err := promptConfirmation(len(targets))
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
		}
		if !confirmed {
			return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
		}
	}

	notice(term.Yellow, "Killing docker containers...")

	if err := eng.RemoveContainers(ctx, targets); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to remove containers", err)
	}

	fmt.Printf("Removed %d container(s)\n", len(targets))
	return nil
}

// promptConfirmation asks the user to confirm the removal. It reads a
// single line from stdin and accepts "y" or "yes". A closed stdin is
// treated as "no".
func promptConfirmation(count int) (bool, error) {
	fmt.Printf("About to force-remove %d container(s).\n", count)
	fmt.Print("Continue? [y/N] ")

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}
