// Package cli implements the cobra-based CLI commands for dockhand.
//
// Each subcommand (list, remove, logs, update, status) is defined in its
// own file within this package. This file defines the root command that
// carries the global flags and resolves the shared invocation state:
// configuration, the runtime engine and the color mode.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/dockhand/internal/config"
	"github.com/mmr-tortoise/dockhand/internal/engine"
	"github.com/mmr-tortoise/dockhand/internal/model"
	"github.com/mmr-tortoise/dockhand/internal/term"
)

// Global flag variables bound to cobra persistent flags on the root
// command, making them available to every subcommand.
var (
	// flagRuntime overrides the container-runtime executable.
	flagRuntime string

	// flagColor selects the color mode: auto, always or never.
	flagColor string

	// verbose raises the diagnostic log level to debug.
	verbose bool
)

// Version, Commit and Date are set at build time via ldflags and
// injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Shared invocation state, resolved once in the root PersistentPreRunE
// before any subcommand runs.
var (
	// cfg is the merged configuration (defaults, file, env, flags).
	cfg config.Config

	// eng invokes the configured runtime binary.
	eng *engine.Engine

	// colorEnabled is the single color decision for this invocation.
	// The terminal probe happens here, once — never inside formatters.
	colorEnabled bool
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dockhand",
		Short: "Manage and observe Docker containers",
		Long: `dockhand manages and observes Docker containers by driving the docker
binary: list and force-remove running containers, pull fresh images and
detect update availability, and stream merged, timestamped, colorized
logs from multiple containers concurrently.`,

		// Errors are formatted by Execute; suppress cobra's own output.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagRuntime, "runtime", "",
		"Container runtime executable (default from config, usually docker)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose diagnostic output")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewUpdateCommand())
	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}

// setup resolves the shared invocation state: diagnostic log level,
// merged configuration, flag overrides, runtime engine and color mode.
func setup(cmd *cobra.Command) error {
	// Diagnostics go to stderr; stdout is reserved for command output.
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}

	// Flags given on the command line beat every other config source.
	// Persistent flags live on the root command, so look them up there.
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("runtime") {
		cfg.Runtime = flagRuntime
	}
	if flags.Changed("color") {
		mode, err := config.ParseColorMode(flagColor)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid --color value", err)
		}
		cfg.Color = mode
	}

	eng = engine.New(cfg.Runtime)
	colorEnabled = resolveColor(cfg.Color, term.IsTerminal)

	log.Debug("invocation configured",
		"runtime", cfg.Runtime, "tail", cfg.Tail, "color", colorEnabled)
	return nil
}

// resolveColor turns a color mode into the final on/off decision,
// consulting the terminal probe only for auto mode.
func resolveColor(mode config.ColorMode, isTerminal func() bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal()
	}
}

// Execute runs the root command and translates errors into OS exit
// codes. CLIError values carry their own codes; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Error())
			os.Exit(int(cliErr.Code))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitGeneralError))
	}
}

// notice prints an action notice line, color-wrapped when color is
// enabled for this invocation.
func notice(c term.Color, msg string) {
	if colorEnabled {
		fmt.Println(term.Paint(c, msg))
	} else {
		fmt.Println(msg)
	}
}
