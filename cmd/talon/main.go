package main

import (
	"os"

	"github.com/simonhull/talon/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.FSCmd())
	rootCmd.AddCommand(commands.MigrateCmd())
	rootCmd.AddCommand(commands.BackupCmd())
	rootCmd.AddCommand(commands.HooksCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
