package fsops

import (
	"fmt"
	"strings"
)

// PathNotFoundError reports that a target could not be resolved against
// the working directory or any configured root.
type PathNotFoundError struct {
	Path  string
	Roots []string
}

func (e *PathNotFoundError) Error() string {
	if len(e.Roots) == 0 {
		return fmt.Sprintf("path not found: %s", e.Path)
	}
	return fmt.Sprintf("path not found: %s (searched roots: %s)", e.Path, strings.Join(e.Roots, ", "))
}

// MutationError reports that a filesystem mutation failed after its
// target had already been resolved.
type MutationError struct {
	Op   string // "write", "delete", "copy", "move", "read"
	Path string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
