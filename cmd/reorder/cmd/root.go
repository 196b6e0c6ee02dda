// Package cmd implements the reorder CLI commands.
//
// The root command resolves configuration and logging once, before any
// subcommand runs:
//
//   - tui       Run the interactive terminal board
//   - replay    Replay a scripted gesture and print the resulting order
//   - version   Print version information
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/reorder/internal/config"
	"github.com/go-drift/reorder/pkg/errors"
	"github.com/go-drift/reorder/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	configPath string
	logLevel   string
	resolved   *config.Resolved
)

// ExecuteContext runs the CLI with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reorder",
		Short: "Drag-to-reorder lists in the terminal",
		Long: `reorder hosts drag-to-reorder lists in a terminal. Rows are dragged by
their handle; dropping on another row of the same group moves the item.

Lists come from reorder.yaml or reorder.toml in the project directory, or
from the file named by --config. Without either, a demo board is shown.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return setup()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default reorder.yaml or reorder.toml in the project root)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off (overrides config and "+logging.EnvLogLevel+")")

	root.AddCommand(tuiCmd(), replayCmd(), versionCmd())
	return root
}

// setup configures logging and resolves the configuration.
func setup() error {
	logging.ConfigureRuntime()

	var err error
	if configPath != "" {
		resolved, err = config.ResolveFile(configPath)
	} else {
		var root string
		if root, err = config.FindProjectRoot(); err == nil {
			resolved, err = config.Resolve(root)
		}
	}
	if err != nil {
		return err
	}

	level := logging.Logger().GetLevel()
	switch {
	case logLevel != "":
		lvl, ok := logging.ParseLevel(logLevel)
		if !ok {
			return fmt.Errorf("--log-level: unknown level %q", logLevel)
		}
		level = lvl
	case !envLevelSet():
		level = resolved.LogLevel
	}
	logging.SetLevel(level)
	errors.SetHandler(&errors.LogHandler{Verbose: level <= zerolog.DebugLevel})

	log := logging.For("cli")
	log.Debug().
		Str("source", resolved.Source).
		Str("title", resolved.Title).
		Int("lists", len(resolved.Lists)).
		Msg("config resolved")
	return nil
}

func envLevelSet() bool {
	_, ok := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
	return ok
}
