package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/talon/internal/logging"
)

// Result is the outcome of a successful Apply call. Present is false when
// a non-critical resolution found nothing; Path and Content are filled
// per action (Path for find/copy/move, Content for read).
type Result struct {
	Present bool
	Path    string
	Content []byte
}

// Absent is the Result returned when a non-critical resolution finds
// nothing. It carries no path and no content.
var Absent = Result{}

// Executor is the single choke point for filesystem mutations. Every
// write, delete, copy, and move flows through Apply, which records a
// reversal recipe in the executor's journal before letting the mutation
// become visible as "applied".
//
// The journal is owned exclusively by the executor; collaborators reach
// it only through Rollback and Dump. Not safe for concurrent use.
type Executor struct {
	resolver *Resolver
	journal  *Journal
	log      logging.Logger
}

// NewExecutor creates an executor with its own empty journal.
func NewExecutor(resolver *Resolver, log logging.Logger) *Executor {
	if log == nil {
		log = logging.NewSilentLogger()
	}
	return &Executor{
		resolver: resolver,
		journal:  NewJournal(log),
		log:      log,
	}
}

// Apply resolves target and performs action against it.
//
// critical governs resolution only: when false, an unresolvable target
// yields (Absent, nil) instead of a *PathNotFoundError. A mutation that
// fails after its target resolved always returns a *MutationError,
// whatever the flag says; an attempted mutation is never safe to ignore.
//
// Every successful write, delete, copy, and move appends exactly one
// journal entry. find and read never touch the journal.
func (x *Executor) Apply(target string, action Action, critical bool) (Result, error) {
	switch a := action.(type) {
	case FindAction:
		return x.find(target, critical)
	case ReadAction:
		return x.read(target, critical)
	case WriteAction:
		return x.write(target, a)
	case DeleteAction:
		return x.delete(target, critical)
	case CopyAction:
		return x.copy(target, a, critical)
	case MoveAction:
		return x.move(target, a, critical)
	default:
		return Absent, &MutationError{Op: action.Kind(), Path: target, Err: os.ErrInvalid}
	}
}

// Rollback undoes all journaled mutations in reverse order, best-effort,
// and leaves the journal empty. Safe to call on an empty journal. It
// returns the number of steps that could not be reversed.
func (x *Executor) Rollback() int {
	return x.journal.Rollback()
}

// Dump returns the journaled target paths in apply order without
// mutating the journal.
func (x *Executor) Dump() []string {
	return x.journal.Dump()
}

// JournalLen reports how many mutations are currently journaled.
func (x *Executor) JournalLen() int {
	return x.journal.Len()
}

func (x *Executor) find(target string, critical bool) (Result, error) {
	path, err := x.resolver.Resolve(target, critical)
	if err != nil {
		return Absent, err
	}
	if path == "" {
		return Absent, nil
	}
	return Result{Present: true, Path: path}, nil
}

func (x *Executor) read(target string, critical bool) (Result, error) {
	path, err := x.resolver.Resolve(target, critical)
	if err != nil {
		return Absent, err
	}
	if path == "" {
		return Absent, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Absent, &MutationError{Op: "read", Path: path, Err: err}
	}
	return Result{Present: true, Path: path, Content: content}, nil
}

// write never requires resolution: an unresolvable target means the file
// is created at the path as given. The prior state is captured before
// the write so the reversal recipe is correct even when the write itself
// fails halfway.
func (x *Executor) write(target string, a WriteAction) (Result, error) {
	path, err := x.resolver.Resolve(target, false)
	if err != nil {
		return Absent, err
	}
	if path == "" {
		path = target
	}

	entry, err := x.snapshot("write", path)
	if err != nil {
		return Absent, &MutationError{Op: "write", Path: path, Err: err}
	}

	mode := a.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Absent, &MutationError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, a.Content, mode); err != nil {
		// The write may have partially clobbered the file; journal the
		// snapshot anyway so rollback can restore the prior state.
		x.journal.record(entry)
		return Absent, &MutationError{Op: "write", Path: path, Err: err}
	}

	x.journal.record(entry)
	return Result{Present: true, Path: path}, nil
}

func (x *Executor) delete(target string, critical bool) (Result, error) {
	path, err := x.resolver.Resolve(target, critical)
	if err != nil {
		return Absent, err
	}
	if path == "" {
		return Absent, nil
	}

	entry, err := x.snapshot("delete", path)
	if err != nil {
		return Absent, &MutationError{Op: "delete", Path: path, Err: err}
	}

	if err := os.Remove(path); err != nil {
		return Absent, &MutationError{Op: "delete", Path: path, Err: err}
	}

	x.journal.record(entry)
	return Result{Present: true, Path: path}, nil
}

func (x *Executor) copy(target string, a CopyAction, critical bool) (Result, error) {
	src, err := x.resolver.Resolve(target, critical)
	if err != nil {
		return Absent, err
	}
	if src == "" {
		return Absent, nil
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return Absent, &MutationError{Op: "copy", Path: src, Err: err}
	}
	mode := fileMode(src)

	if err := os.MkdirAll(filepath.Dir(a.Dest), 0755); err != nil {
		return Absent, &MutationError{Op: "copy", Path: a.Dest, Err: err}
	}
	if err := os.WriteFile(a.Dest, content, mode); err != nil {
		return Absent, &MutationError{Op: "copy", Path: a.Dest, Err: err}
	}

	x.journal.record(Entry{
		Kind:          "copy",
		TargetPath:    src,
		SecondaryPath: a.Dest,
	})
	return Result{Present: true, Path: a.Dest}, nil
}

func (x *Executor) move(target string, a MoveAction, critical bool) (Result, error) {
	src, err := x.resolver.Resolve(target, critical)
	if err != nil {
		return Absent, err
	}
	if src == "" {
		return Absent, nil
	}

	if err := os.MkdirAll(filepath.Dir(a.Dest), 0755); err != nil {
		return Absent, &MutationError{Op: "move", Path: a.Dest, Err: err}
	}
	if err := os.Rename(src, a.Dest); err != nil {
		return Absent, &MutationError{Op: "move", Path: src, Err: err}
	}

	x.journal.record(Entry{
		Kind:          "move",
		TargetPath:    src,
		SecondaryPath: a.Dest,
	})
	return Result{Present: true, Path: a.Dest}, nil
}

// snapshot captures the pre-mutation state of path for a write or delete
// entry: its full content and mode when it exists, or a did-not-exist
// marker otherwise.
//
// A target that exists but cannot be fully captured (a directory, an
// unreadable file) is an error: without the true prior state the entry's
// reversal recipe would be wrong, so the mutation must not proceed.
func (x *Executor) snapshot(kind, path string) (Entry, error) {
	entry := Entry{Kind: kind, TargetPath: path}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entry, nil
		}
		return entry, err
	}
	if !info.Mode().IsRegular() {
		return entry, fmt.Errorf("%s is not a regular file", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return entry, err
	}
	entry.Existed = true
	entry.PriorContent = content
	entry.Mode = info.Mode()
	return entry, nil
}

func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode()
	}
	return 0644
}
