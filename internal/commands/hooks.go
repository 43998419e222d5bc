package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/talon/internal/config"
	"github.com/simonhull/talon/internal/output"
	"github.com/spf13/cobra"
)

// HooksCmd creates the 'hooks' command listing registered hook points
func HooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "List hook points with registered handlers",
		Long: `Shows which hook points have handlers under the current wiring.
Hooks fire around logical operations (apply, rollback, migrate); the
mutation journal itself exposes no hook points.

Example:
  talon hooks`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			reg := newHookRegistry(cfg, true)
			points := reg.Points()

			output.Info(fmt.Sprintf("Hook points with handlers: %d", len(points)))
			for _, p := range points {
				output.Step(string(p))
			}
		},
	}
}
