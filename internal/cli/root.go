package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the command tree. Each call returns fresh commands with
// their own flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cutline",
		Short:   "Match performance metrics against ordered standards",
		Version: version,
		Long: `Cutline matches a measured metric (a swim time, a score) against an ordered
list of standards, reports the best standard achieved, the next one up and
the gap to it, and validates standards files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Fail fast on bad logging flags before any work is done.
			_, err := commandLogger(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(newComputeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line and returns the first error encountered.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}
