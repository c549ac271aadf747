// status.go implements the "dockhand status" command: a one-row-per-
// container table combining the parsed inspect record (status, restart
// policy, health, uptime, ports) with a one-shot stats sample (cpu,
// memory).
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/model"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <container>...",
		Short: "Show container status, uptime and resource usage",
		Long: `Show a status table for the given containers: state, restart policy,
health, uptime, exposed ports, and current CPU/memory usage.

Examples:
  dockhand status nginx-1
  dockhand status api-1 worker-1`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), args)
		},
	}
}

// runStatus inspects each container and prints one table row per
// container. Stats are best-effort: a stopped container has no stats
// sample, which must not hide its inspect row.
func runStatus(ctx context.Context, names []string) error {
	fmt.Printf("%-20s %-10s %-10s %-10s %-12s %-8s %-12s %s\n",
		"NAME", "STATUS", "RESTART", "HEALTH", "UPTIME", "CPU", "MEMORY", "PORTS")

	for _, name := range names {
		info, err := eng.InspectRecord(ctx, name)
		if err != nil {
			return model.WrapCLIError(model.ExitContainerNotFound,
				fmt.Sprintf("failed to inspect container %q", name), err)
		}

		cpu, memory := "-", "-"
		if stats, err := eng.StatsRecord(ctx, name); err == nil {
			cpu, memory = stats.CPU, stats.Memory
		} else {
			log.Debug("stats unavailable", "container", name, "error", err)
		}

		fmt.Printf("%-20s %-10s %-10s %-10s %-12s %-8s %-12s %s\n",
			info.Name,
			dash(info.Status),
			dash(info.RestartPolicy),
			dash(info.Health),
			dash(info.Uptime),
			cpu,
			memory,
			dash(info.Ports),
		)
	}
	return nil
}

// dash substitutes "-" for empty table cells.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
