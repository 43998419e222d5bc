package fsops

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver turns user-supplied paths into real filesystem paths by trying
// them directly, then against an ordered list of root directories.
//
// Resolution is a read-only probe: it only performs existence checks and
// never creates or modifies anything.
type Resolver struct {
	roots []string
}

// NewResolver creates a resolver with the given root directories. The
// list is copied and never modified afterward.
func NewResolver(roots []string) *Resolver {
	r := &Resolver{roots: make([]string, len(roots))}
	copy(r.roots, roots)
	return r
}

// Roots returns a copy of the configured root directories.
func (r *Resolver) Roots() []string {
	roots := make([]string, len(r.roots))
	copy(roots, r.roots)
	return roots
}

// Resolve maps pathLike to an existing filesystem path.
//
// The path is tried as given first (absolute, or relative to the current
// working directory), then prefixed with each root in order; the first
// candidate that exists wins.
//
// When nothing matches: critical=true returns a *PathNotFoundError;
// critical=false returns ("", nil) so callers can branch on absence
// without an error check.
func (r *Resolver) Resolve(pathLike string, critical bool) (string, error) {
	if pathLike == "" {
		return "", fmt.Errorf("empty path")
	}

	if _, err := os.Stat(pathLike); err == nil {
		return pathLike, nil
	}

	for _, root := range r.roots {
		candidate := filepath.Join(root, pathLike)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if critical {
		return "", &PathNotFoundError{Path: pathLike, Roots: r.Roots()}
	}
	return "", nil
}
