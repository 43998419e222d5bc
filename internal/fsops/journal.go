package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/talon/internal/logging"
)

// Entry records one applied mutation together with everything needed to
// reverse it. Entries are self-contained: undoing one restores its path
// to the exact pre-mutation state regardless of any later entry.
type Entry struct {
	Kind          string // "write", "delete", "copy", "move"
	TargetPath    string // resolved path the action was applied to
	PriorContent  []byte // full content before the mutation, nil when Existed is false
	Existed       bool   // whether TargetPath existed before the mutation
	SecondaryPath string // destination for copy/move, empty otherwise
	Sequence      int    // monotonically increasing, orders rollback
	Mode          os.FileMode
}

// Journal is an ordered, append-only record of applied mutations. It
// lives only in memory for the duration of a run and is owned exclusively
// by an Executor; nothing else appends to or clears it.
//
// Not safe for concurrent use. One journal per logical operation.
type Journal struct {
	entries []Entry
	nextSeq int
	log     logging.Logger
}

// NewJournal creates an empty journal. A nil logger falls back to the
// silent logger so rollback reporting can never fail.
func NewJournal(log logging.Logger) *Journal {
	if log == nil {
		log = logging.NewSilentLogger()
	}
	return &Journal{log: log}
}

// record appends an entry with the next sequence number. Only the
// Executor calls this; the sequence is assigned here so ordering cannot
// be forged by callers.
func (j *Journal) record(e Entry) {
	e.Sequence = j.nextSeq
	j.nextSeq++
	j.entries = append(j.entries, e)
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Dump returns the target paths of all entries in original apply order.
// It never mutates the journal; repeated calls return the same sequence.
func (j *Journal) Dump() []string {
	paths := make([]string, len(j.entries))
	for i, e := range j.entries {
		paths[i] = e.TargetPath
	}
	return paths
}

// Rollback undoes every recorded mutation in reverse apply order.
//
// Rollback is best-effort: a step that cannot be reversed is logged and
// skipped, and the remaining steps still run. The journal is drained
// afterward regardless of outcome, so rollback is attempted at most once
// per set of entries and is a safe no-op on an empty journal.
//
// It returns the number of steps that failed to reverse; callers that
// only care about "did everything come back" can compare against zero.
func (j *Journal) Rollback() int {
	failed := 0
	for i := len(j.entries) - 1; i >= 0; i-- {
		if err := j.reverse(j.entries[i]); err != nil {
			failed++
			j.log.Error("rollback step failed",
				logging.F("op", j.entries[i].Kind),
				logging.F("path", j.entries[i].TargetPath),
				logging.F("error", err),
			)
		}
	}
	j.entries = nil
	return failed
}

// reverse applies the inverse of a single entry.
func (j *Journal) reverse(e Entry) error {
	switch e.Kind {
	case "write", "delete":
		if !e.Existed {
			// The file did not exist before; undo means removing it.
			if err := os.Remove(e.TargetPath); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		}
		mode := e.Mode
		if mode == 0 {
			mode = 0644
		}
		if err := os.MkdirAll(filepath.Dir(e.TargetPath), 0755); err != nil {
			return err
		}
		return os.WriteFile(e.TargetPath, e.PriorContent, mode)
	case "copy":
		return os.Remove(e.SecondaryPath)
	case "move":
		return os.Rename(e.SecondaryPath, e.TargetPath)
	default:
		return fmt.Errorf("unknown journal entry kind %q", e.Kind)
	}
}
