package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/output"
	"github.com/simonhull/talon/internal/project"
	"github.com/spf13/cobra"
)

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new Talon-managed project",
		Long: `Creates a new project directory with:
• Talon configuration (talon.yml)
• A migrations directory
• README and .gitignore

The scaffold is transactional: if any file fails to write, everything
already written is rolled back.

Example:
  talon new myapp`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := args[0]

			output.Verbose(fmt.Sprintf("Creating new project: %s", name))

			scaffolder := project.NewScaffolder(logging.Default())
			if err := scaffolder.Scaffold(name); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("Created project: %s", name))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", name))
			output.Step("talon migrate create initial_layout")
		},
	}
}
