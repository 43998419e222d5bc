package commands

import (
	"os"
	"path/filepath"

	"github.com/simonhull/talon/internal/backup"
	"github.com/simonhull/talon/internal/config"
	"github.com/simonhull/talon/internal/output"
	"github.com/spf13/cobra"
)

// BackupCmd creates the 'backup' command for zip snapshots
func BackupCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "backup [paths...]",
		Short: "Snapshot paths into a zip archive",
		Long: `Creates a timestamped zip archive of the given files and
directories under the configured backup directory.

Example:
  talon backup migrations talon.yml`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			dest := filepath.Join(cfg.BackupDir, backup.SnapshotName(name))
			if err := backup.Archive(dest, args); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success("Backup written")
			output.Step(dest)
		},
	}

	cmd.Flags().StringVar(&name, "name", "manual", "Operation name used in the archive filename")
	return cmd
}
