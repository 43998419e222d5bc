package fsops

import (
	"fmt"
	"io/fs"
)

// Action is a filesystem operation the Executor can apply. Each concrete
// action carries only the arguments it needs, so an invalid combination
// (a delete with content, a write with a destination) cannot be built.
type Action interface {
	// Kind returns the stable name used in journal entries and logs.
	Kind() string
	// Description returns a human-readable description for output
	// (e.g., "Write config/app.yml (234 bytes)").
	Description(target string) string
}

// FindAction resolves a target without touching it.
type FindAction struct{}

func (FindAction) Kind() string { return "find" }

func (FindAction) Description(target string) string {
	return fmt.Sprintf("Find %s", target)
}

// ReadAction resolves a target and returns its content.
type ReadAction struct{}

func (ReadAction) Kind() string { return "read" }

func (ReadAction) Description(target string) string {
	return fmt.Sprintf("Read %s", target)
}

// WriteAction writes Content as the target's full content, creating the
// file (and parent directories) when absent and overwriting otherwise.
type WriteAction struct {
	Content []byte
	Mode    fs.FileMode // defaults to 0644 when zero
}

func (WriteAction) Kind() string { return "write" }

func (a WriteAction) Description(target string) string {
	return fmt.Sprintf("Write %s (%d bytes)", target, len(a.Content))
}

// DeleteAction removes the target file.
type DeleteAction struct{}

func (DeleteAction) Kind() string { return "delete" }

func (DeleteAction) Description(target string) string {
	return fmt.Sprintf("Delete %s", target)
}

// CopyAction duplicates the target to Dest.
type CopyAction struct {
	Dest string
}

func (CopyAction) Kind() string { return "copy" }

func (a CopyAction) Description(target string) string {
	return fmt.Sprintf("Copy %s → %s", target, a.Dest)
}

// MoveAction relocates the target to Dest.
type MoveAction struct {
	Dest string
}

func (MoveAction) Kind() string { return "move" }

func (a MoveAction) Description(target string) string {
	return fmt.Sprintf("Move %s → %s", target, a.Dest)
}
