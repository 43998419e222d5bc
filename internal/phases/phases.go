// Package phases runs a logical operation as a sequence of named phases
// against one shared transactional executor. When a phase fails, every
// mutation from every completed and partial phase is rolled back.
package phases

import (
	"fmt"

	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/hooks"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/output"
)

// Phase is one step of a logical operation. Run receives the shared
// executor so every mutation lands in the same journal.
type Phase struct {
	Name string
	Run  func(exec *fsops.Executor) error
}

// Orchestrator executes phases with apply/rollback hooks around them.
type Orchestrator struct {
	exec  *fsops.Executor
	hooks *hooks.Registry
	log   logging.Logger
}

// NewOrchestrator creates an orchestrator around an executor. reg may be
// nil when no hooks are registered.
func NewOrchestrator(exec *fsops.Executor, reg *hooks.Registry, log logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.NewSilentLogger()
	}
	if reg == nil {
		reg = hooks.NewRegistry(log)
	}
	return &Orchestrator{exec: exec, hooks: reg, log: log}
}

// Run executes phases in order under the given operation name. On the
// first phase error it rolls the shared journal back (a no-op when the
// journal is already empty) and returns the failed phase's error; on
// success the journal is left intact for the caller to inspect or keep.
func (o *Orchestrator) Run(operation string, phases []Phase) error {
	ctx := map[string]string{"operation": operation}
	o.hooks.Fire(hooks.BeforeApply, ctx)

	for _, p := range phases {
		output.Verbose(fmt.Sprintf("Running phase: %s", p.Name))
		if err := p.Run(o.exec); err != nil {
			o.log.Error("phase failed",
				logging.F("operation", operation),
				logging.F("phase", p.Name),
				logging.F("error", err),
			)
			o.rollback(ctx)
			return fmt.Errorf("phase %s: %w", p.Name, err)
		}
	}

	o.hooks.Fire(hooks.AfterApply, ctx)
	return nil
}

func (o *Orchestrator) rollback(ctx map[string]string) {
	o.hooks.Fire(hooks.BeforeRollback, ctx)
	if failed := o.exec.Rollback(); failed > 0 {
		output.Warning(fmt.Sprintf("Rollback incomplete: %d step(s) could not be restored", failed))
	}
	o.hooks.Fire(hooks.AfterRollback, ctx)
}
