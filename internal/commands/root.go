package commands

import (
	"os"

	"github.com/simonhull/talon"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the Talon CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "talon",
		Short: "Transactional project maintenance for file trees",
		Long: `Talon applies multi-step changes to a project tree through a
transactional journal, so a failure partway through code generation,
a file migration, or a deploy can be rolled back cleanly.

• Scaffold projects with sensible defaults
• Apply versioned file migrations with automatic rollback
• Snapshot trees before risky changes

Learn more: https://github.com/simonhull/talon`,
		Version: talon.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			if verbose {
				logging.SetDefault(logging.NewLogger(logging.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
