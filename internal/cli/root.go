// Package cli wires the cobra command tree over the persistence core.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/xoseperez/platformio/internal/envcfg"
	"github.com/xoseperez/platformio/internal/logging"
	"github.com/xoseperez/platformio/internal/session"
)

// NewRootCmd creates the root command. Logging and the per-invocation
// session are attached to the command context before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "pio",
		Short:        "PlatformIO local state and cache tooling",
		Long:         "Manage persisted application settings and the local download/API cache.",
		Version:      ver,
		SilenceUsage: true,
		Example: `  # Show all settings
  pio settings list

  # Change a setting
  pio settings set enable_telemetry no

  # Revert every setting to its default
  pio settings reset

  # Drop the local cache
  pio cache clean`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if debug {
				level = "debug"
			}
			logger := logging.New(level)

			env, err := envcfg.Load()
			if err != nil {
				return err
			}

			ctx := logging.WithContext(cmd.Context(), logger)
			ctx = session.WithContext(ctx, session.New(env))
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newSettingsCmd(), newCacheCmd(), newSystemCmd())

	return cmd
}
