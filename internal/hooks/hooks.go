// Package hooks provides a registry of named hook points fired around
// logical operations (apply, rollback, migrate). The mutation layer
// itself exposes no hook points; orchestration code fires hooks at the
// call sites that invoke it.
package hooks

import (
	"sort"

	"github.com/simonhull/talon/internal/logging"
)

// Point identifies a hook point.
type Point string

const (
	BeforeApply    Point = "before:apply"
	AfterApply     Point = "after:apply"
	BeforeRollback Point = "before:rollback"
	AfterRollback  Point = "after:rollback"
	BeforeMigrate  Point = "before:migrate"
	AfterMigrate   Point = "after:migrate"
)

// Handler is called when a hook point fires. The context map carries
// operation metadata (operation name, affected paths).
type Handler func(ctx map[string]string) error

// Registry holds hook handlers by point. Handlers run in registration
// order; handler errors are logged and never propagated, so a misbehaving
// hook cannot derail the operation it observes.
type Registry struct {
	handlers map[Point][]Handler
	log      logging.Logger
}

// NewRegistry creates an empty hook registry.
func NewRegistry(log logging.Logger) *Registry {
	if log == nil {
		log = logging.NewSilentLogger()
	}
	return &Registry{
		handlers: make(map[Point][]Handler),
		log:      log,
	}
}

// Register adds a handler for a hook point.
func (r *Registry) Register(p Point, h Handler) {
	r.handlers[p] = append(r.handlers[p], h)
}

// Fire runs all handlers registered for a point in registration order.
func (r *Registry) Fire(p Point, ctx map[string]string) {
	for _, h := range r.handlers[p] {
		if err := h(ctx); err != nil {
			r.log.Warn("hook handler failed",
				logging.F("point", string(p)),
				logging.F("error", err),
			)
		}
	}
}

// Points returns the hook points that have at least one handler, sorted
// by name.
func (r *Registry) Points() []Point {
	points := make([]Point, 0, len(r.handlers))
	for p := range r.handlers {
		points = append(points, p)
	}
	sort.Slice(points, func(i, k int) bool {
		return points[i] < points[k]
	})
	return points
}
