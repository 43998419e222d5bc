package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/talon/internal/config"
	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/input"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// opSpec is one entry of an fs script. The pseudo-targets "rollback" and
// "dump" act as commands and are dispatched before path resolution.
type opSpec struct {
	Target   string `yaml:"target"`
	Action   string `yaml:"action,omitempty"`
	Content  string `yaml:"content,omitempty"`
	Dest     string `yaml:"dest,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// FSCmd creates the 'fs' command for journaled one-shot and scripted
// filesystem operations.
func FSCmd() *cobra.Command {
	var script string
	var optional bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "fs [target] [action] [arg]",
		Short: "Apply journaled filesystem operations",
		Long: `Apply filesystem operations through the transactional journal.

Actions: find, read, write, delete, copy, move.
The targets "rollback" and "dump" are commands, not paths: rollback
undoes every journaled change in reverse order, dump lists the paths
the journal touched.

Examples:
  talon fs config.yml read
  talon fs config.yml write "key: value"
  talon fs old.txt move new.txt
  talon fs --script release-ops.yml`,
		Args: cobra.RangeArgs(0, 3),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			exec := fsops.NewExecutor(fsops.NewResolver(cfg.Roots), logging.Default())

			var ops []opSpec
			switch {
			case script != "":
				ops, err = loadScript(script)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
			case len(args) > 0:
				op := opSpec{Target: args[0], Optional: optional}
				if len(args) > 1 {
					op.Action = args[1]
				}
				if len(args) > 2 {
					op.Content = args[2]
					op.Dest = args[2]
				}
				ops = []opSpec{op}
			default:
				output.Error("provide a target or --script")
				os.Exit(1)
			}

			for _, op := range ops {
				if err := dispatch(exec, op, yes); err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "YAML script of operations to apply in order")
	cmd.Flags().BoolVar(&optional, "optional", false, "Treat an unresolvable target as absence, not an error")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the rollback confirmation prompt")

	return cmd
}

// dispatch runs one operation. Pseudo-targets are recognized first, so
// "rollback" and "dump" never reach path resolution.
func dispatch(exec *fsops.Executor, op opSpec, yes bool) error {
	switch op.Target {
	case "rollback":
		return runRollback(exec, yes)
	case "dump":
		for _, path := range exec.Dump() {
			output.Step(path)
		}
		return nil
	}

	action, err := parseAction(op)
	if err != nil {
		return err
	}

	res, err := exec.Apply(op.Target, action, !op.Optional)
	if err != nil {
		return err
	}
	if !res.Present {
		output.Info(fmt.Sprintf("Not found (skipped): %s", op.Target))
		return nil
	}

	switch action.(type) {
	case fsops.ReadAction:
		fmt.Print(string(res.Content))
	case fsops.FindAction:
		output.Step(res.Path)
	default:
		output.Success(action.Description(op.Target))
	}
	return nil
}

func runRollback(exec *fsops.Executor, yes bool) error {
	n := exec.JournalLen()
	if n == 0 {
		output.Info("Journal is empty, nothing to roll back")
		return nil
	}
	if !yes && !input.Confirm(fmt.Sprintf("Roll back %d journaled change(s)?", n), false) {
		output.Info("Rollback cancelled")
		return nil
	}
	if failed := exec.Rollback(); failed > 0 {
		output.Warning(fmt.Sprintf("Rollback incomplete: %d step(s) could not be restored", failed))
		return nil
	}
	output.Success("Rolled back all journaled changes")
	return nil
}

func parseAction(op opSpec) (fsops.Action, error) {
	switch op.Action {
	case "find", "":
		return fsops.FindAction{}, nil
	case "read":
		return fsops.ReadAction{}, nil
	case "write":
		return fsops.WriteAction{Content: []byte(op.Content)}, nil
	case "delete":
		return fsops.DeleteAction{}, nil
	case "copy":
		if op.Dest == "" {
			return nil, fmt.Errorf("copy needs a destination")
		}
		return fsops.CopyAction{Dest: op.Dest}, nil
	case "move":
		if op.Dest == "" {
			return nil, fmt.Errorf("move needs a destination")
		}
		return fsops.MoveAction{Dest: op.Dest}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", op.Action)
	}
}

func loadScript(path string) ([]opSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	var ops []opSpec
	if err := yaml.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return ops, nil
}
