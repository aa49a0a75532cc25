// Package cli wires the single pack subcommand onto a cobra root command.
// It is a thin driver over internal/engine, not a configuration system:
// rich CLI/config plumbing is an explicit non-goal of the packing engine.
package cli

import (
	"context"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the deckpack CLI and returns an error if the command fails.
func Execute(ctx context.Context) error {
	var logLevel string

	root := &cobra.Command{
		Use:          "deckpack",
		Short:        "deckpack packs 2.5D shipyard blocks onto a carrier deck",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := charmlog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newPackCmd())

	return root.ExecuteContext(ctx)
}
