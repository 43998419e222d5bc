// Package migrate applies versioned file migrations to a project tree.
//
// Each migration is an ordered set of mutations applied through a single
// transactional executor, so a failed step rolls the whole migration
// back. Applied migration IDs are recorded in a YAML state file.
package migrate

import (
	"fmt"

	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/hooks"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/output"
)

// Runner applies and unapplies migrations.
type Runner struct {
	dir       string // migrations directory
	stateFile string
	roots     []string
	hooks     *hooks.Registry
	log       logging.Logger
}

// NewRunner creates a migration runner. hooks may be nil when no
// orchestration hooks are registered.
func NewRunner(dir, stateFile string, roots []string, reg *hooks.Registry, log logging.Logger) *Runner {
	if log == nil {
		log = logging.NewSilentLogger()
	}
	if reg == nil {
		reg = hooks.NewRegistry(log)
	}
	return &Runner{
		dir:       dir,
		stateFile: stateFile,
		roots:     roots,
		hooks:     reg,
		log:       log,
	}
}

// Up applies all pending migrations in ID order. Each migration runs
// against its own executor; a failed step rolls that migration back and
// stops the run, leaving earlier (committed) migrations applied.
func (r *Runner) Up() error {
	migrations, err := LoadDir(r.dir)
	if err != nil {
		return err
	}
	state, err := LoadState(r.stateFile)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if state.IsApplied(m.ID) {
			continue
		}
		pending++

		if err := r.runSteps(m, m.Up); err != nil {
			return fmt.Errorf("migration %s: %w", m.ID, err)
		}

		state.MarkApplied(m.ID)
		if err := state.Save(r.stateFile); err != nil {
			return err
		}
		output.Success(fmt.Sprintf("Applied migration %s (%s)", m.ID, m.Name))
	}

	if pending == 0 {
		output.Info("No pending migrations")
	}
	return nil
}

// Down unapplies the last n applied migrations using their down steps.
// A migration without down steps cannot be unapplied.
func (r *Runner) Down(n int) error {
	if n < 1 {
		return fmt.Errorf("steps must be at least 1")
	}

	migrations, err := LoadDir(r.dir)
	if err != nil {
		return err
	}
	state, err := LoadState(r.stateFile)
	if err != nil {
		return err
	}

	byID := make(map[string]Migration, len(migrations))
	for _, m := range migrations {
		byID[m.ID] = m
	}

	for i := 0; i < n; i++ {
		if len(state.Applied) == 0 {
			output.Info("Nothing to roll back")
			return nil
		}
		id := state.Applied[len(state.Applied)-1]
		m, ok := byID[id]
		if !ok {
			return fmt.Errorf("applied migration %s not found in %s", id, r.dir)
		}
		if len(m.Down) == 0 {
			return fmt.Errorf("migration %s has no down steps", id)
		}

		if err := r.runSteps(m, m.Down); err != nil {
			return fmt.Errorf("unapplying migration %s: %w", id, err)
		}

		state.MarkUnapplied(id)
		if err := state.Save(r.stateFile); err != nil {
			return err
		}
		output.Success(fmt.Sprintf("Unapplied migration %s (%s)", id, m.Name))
	}
	return nil
}

// Status returns applied and pending migration IDs.
func (r *Runner) Status() (applied, pending []string, err error) {
	migrations, err := LoadDir(r.dir)
	if err != nil {
		return nil, nil, err
	}
	state, err := LoadState(r.stateFile)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range migrations {
		if state.IsApplied(m.ID) {
			applied = append(applied, m.ID)
		} else {
			pending = append(pending, m.ID)
		}
	}
	return applied, pending, nil
}

// runSteps applies one migration's steps through a fresh executor. On
// step failure the executor's journal is rolled back so no half-applied
// migration is left on disk.
func (r *Runner) runSteps(m Migration, steps []Step) error {
	exec := fsops.NewExecutor(fsops.NewResolver(r.roots), r.log)
	ctx := map[string]string{"migration": m.ID, "name": m.Name}

	r.hooks.Fire(hooks.BeforeMigrate, ctx)

	for _, step := range steps {
		action, err := step.action()
		if err != nil {
			r.rollback(exec, ctx)
			return err
		}

		res, err := exec.Apply(step.Target, action, !step.Optional)
		if err != nil {
			r.rollback(exec, ctx)
			return fmt.Errorf("step %s %s: %w", step.Action, step.Target, err)
		}
		if !res.Present {
			output.Verbose(fmt.Sprintf("Skipped optional step: %s %s", step.Action, step.Target))
		}
	}

	r.hooks.Fire(hooks.AfterMigrate, ctx)
	return nil
}

func (r *Runner) rollback(exec *fsops.Executor, ctx map[string]string) {
	r.hooks.Fire(hooks.BeforeRollback, ctx)
	if failed := exec.Rollback(); failed > 0 {
		output.Warning(fmt.Sprintf("Rollback incomplete: %d step(s) could not be restored", failed))
	}
	r.hooks.Fire(hooks.AfterRollback, ctx)
}
