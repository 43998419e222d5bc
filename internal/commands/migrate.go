package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/simonhull/talon/internal/backup"
	"github.com/simonhull/talon/internal/config"
	"github.com/simonhull/talon/internal/hooks"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/migrate"
	"github.com/simonhull/talon/internal/output"
	"github.com/spf13/cobra"
)

const migrationsDir = "migrations"

// MigrateCmd creates the migrate command with subcommands
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "File migration commands",
		Long: `Apply versioned file migrations to the project tree.

Each migration runs inside a transactional journal: a failed step rolls
the whole migration back, and applied migrations are recorded in
.talon/migrations.yml.

Examples:
  talon migrate up                 # Apply all pending migrations
  talon migrate down               # Unapply the last migration
  talon migrate down 3             # Unapply the last 3 migrations
  talon migrate status             # Show applied and pending migrations
  talon migrate create add_config  # Create a migration skeleton`,
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	cmd.AddCommand(migrateStatusCmd())
	cmd.AddCommand(migrateCreateCmd())

	return cmd
}

// newRunner builds a runner from project config with the default hook
// wiring.
func newRunner(withBackup bool) (*migrate.Runner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	reg := newHookRegistry(cfg, withBackup)
	return migrate.NewRunner(migrationsDir, cfg.StateFile, cfg.Roots, reg, logging.Default()), nil
}

// newHookRegistry wires Talon's built-in hooks: a one-time backup of the
// migrations directory before the first migration, and rollback
// narration. The hooks command lists the result.
func newHookRegistry(cfg *config.Config, withBackup bool) *hooks.Registry {
	reg := hooks.NewRegistry(logging.Default())
	if withBackup {
		backedUp := false
		reg.Register(hooks.BeforeMigrate, func(ctx map[string]string) error {
			if backedUp {
				return nil
			}
			backedUp = true
			dest := fmt.Sprintf("%s/%s", cfg.BackupDir, backup.SnapshotName("migrate"))
			if err := backup.Archive(dest, []string{migrationsDir}); err != nil {
				return err
			}
			output.Verbose(fmt.Sprintf("Backup written: %s", dest))
			return nil
		})
	}
	reg.Register(hooks.AfterRollback, func(ctx map[string]string) error {
		output.Info(fmt.Sprintf("Rolled back migration %s", ctx["migration"]))
		return nil
	})
	return reg
}

func migrateUpCmd() *cobra.Command {
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner, err := newRunner(!noBackup)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if err := runner.Up(); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the pre-migration backup snapshot")
	return cmd
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Unapply migrations",
		Long:  "Unapplies the last N migrations using their down steps. Default is 1.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			steps := 1
			if len(args) > 0 {
				var err error
				steps, err = strconv.Atoi(args[0])
				if err != nil || steps < 1 {
					output.Error("Steps must be a positive integer")
					os.Exit(1)
				}
			}

			runner, err := newRunner(false)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if err := runner.Down(steps); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runner, err := newRunner(false)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			applied, pending, err := runner.Status()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Info(fmt.Sprintf("Applied: %d", len(applied)))
			for _, id := range applied {
				output.Step(id)
			}
			output.Info(fmt.Sprintf("Pending: %d", len(pending)))
			for _, id := range pending {
				output.Step(id)
			}
		},
	}
}

func migrateCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a migration skeleton",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path, err := migrate.Create(migrationsDir, args[0])
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Info("Edit the migration file:")
			output.Step(path)
		},
	}
}
