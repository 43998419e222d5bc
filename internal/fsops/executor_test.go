package fsops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/logging"
)

func newExecutor(roots ...string) *fsops.Executor {
	return fsops.NewExecutor(fsops.NewResolver(roots), logging.NewSilentLogger())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(content)
}

func TestApply_WriteThenRollback_RestoresOriginal(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yml")
	writeFile(t, path, "original")

	exec := newExecutor()
	_, err := exec.Apply(path, fsops.WriteAction{Content: []byte("overwritten")}, true)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := readFile(t, path); got != "overwritten" {
		t.Fatalf("write not applied, got %q", got)
	}

	exec.Rollback()

	if got := readFile(t, path); got != "original" {
		t.Errorf("rollback did not restore original content, got %q", got)
	}
}

func TestApply_WriteNewFileThenRollback_FileAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "new.txt")

	exec := newExecutor()
	_, err := exec.Apply(path, fsops.WriteAction{Content: []byte("data")}, true)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	exec.Rollback()

	// The file must be gone, not present with empty content.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be absent after rollback, stat err = %v", err)
	}
}

func TestApply_DeleteThenRollback_RecreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keep.txt")
	writeFile(t, path, "precious")

	exec := newExecutor()
	if _, err := exec.Apply(path, fsops.DeleteAction{}, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file should be deleted")
	}

	exec.Rollback()

	if got := readFile(t, path); got != "precious" {
		t.Errorf("rollback did not recreate file, got %q", got)
	}
}

func TestApply_CopyThenRollback_RemovesDestination(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")
	writeFile(t, src, "payload")

	exec := newExecutor()
	res, err := exec.Apply(src, fsops.CopyAction{Dest: dst}, true)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Path != dst {
		t.Errorf("result path = %q, want %q", res.Path, dst)
	}
	if got := readFile(t, dst); got != "payload" {
		t.Fatalf("copy content = %q", got)
	}

	exec.Rollback()

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should be removed after rollback")
	}
	if got := readFile(t, src); got != "payload" {
		t.Errorf("source altered by rollback, got %q", got)
	}
}

func TestApply_MoveThenRollback_MovesBack(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "old.txt")
	dst := filepath.Join(tmpDir, "new.txt")
	writeFile(t, src, "cargo")

	exec := newExecutor()
	if _, err := exec.Apply(src, fsops.MoveAction{Dest: dst}, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source should be gone after move")
	}

	exec.Rollback()

	if got := readFile(t, src); got != "cargo" {
		t.Errorf("rollback did not move file back, got %q", got)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should be gone after rollback")
	}
}

func TestRollback_ReverseOrder_OverlappingPaths(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "layered.txt")

	exec := newExecutor()
	// A creates the file, B overwrites it, C overwrites again.
	for _, content := range []string{"from-a", "from-b", "from-c"} {
		if _, err := exec.Apply(path, fsops.WriteAction{Content: []byte(content)}, true); err != nil {
			t.Fatalf("Apply %q failed: %v", content, err)
		}
	}

	exec.Rollback()

	// Undoing C restores B's content, undoing B restores A's, undoing A
	// removes the file. Anything left means ordering was wrong.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		content, _ := os.ReadFile(path)
		t.Errorf("file should be absent after full rollback, still has %q", content)
	}
}

func TestRollback_BestEffort_ContinuesPastFailedStep(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "first.txt")
	second := filepath.Join(tmpDir, "second.txt")
	writeFile(t, first, "one")

	exec := newExecutor()
	if _, err := exec.Apply(first, fsops.WriteAction{Content: []byte("changed")}, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := exec.Apply(second, fsops.CopyAction{Dest: filepath.Join(tmpDir, "missing", "file")}, true); err == nil {
		t.Fatal("copy of nonexistent source should fail")
	} else {
		var notFound *fsops.PathNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("want PathNotFoundError, got %v", err)
		}
	}

	// Sabotage the remaining entry: move the first file into a spot the
	// reversal cannot write back through.
	sub := filepath.Join(tmpDir, "sub")
	writeFile(t, filepath.Join(tmpDir, "ok.txt"), "fine")
	if _, err := exec.Apply(filepath.Join(tmpDir, "ok.txt"), fsops.WriteAction{Content: []byte("dirty")}, true); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := exec.Apply(first, fsops.MoveAction{Dest: filepath.Join(sub, "moved.txt")}, true); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	// Externally delete the moved file so that reversal step must fail.
	if err := os.Remove(filepath.Join(sub, "moved.txt")); err != nil {
		t.Fatalf("removing moved file: %v", err)
	}

	failed := exec.Rollback()

	if failed != 1 {
		t.Errorf("failed steps = %d, want 1", failed)
	}
	// The untouched entries still rolled back.
	if got := readFile(t, filepath.Join(tmpDir, "ok.txt")); got != "fine" {
		t.Errorf("ok.txt not restored, got %q", got)
	}
	if len(exec.Dump()) != 0 {
		t.Error("journal should be drained even after a failed step")
	}
}

func TestDump_IdempotentAndOrdered(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.txt")
	b := filepath.Join(tmpDir, "b.txt")

	exec := newExecutor()
	if _, err := exec.Apply(a, fsops.WriteAction{Content: []byte("a")}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := exec.Apply(b, fsops.WriteAction{Content: []byte("b")}, true); err != nil {
		t.Fatal(err)
	}

	first := exec.Dump()
	second := exec.Dump()

	if len(first) != 2 || first[0] != a || first[1] != b {
		t.Errorf("dump order wrong: %v", first)
	}
	if len(second) != len(first) || second[0] != first[0] || second[1] != first[1] {
		t.Errorf("dump not idempotent: %v vs %v", first, second)
	}
}

func TestRollback_ClearsJournal(t *testing.T) {
	tmpDir := t.TempDir()

	exec := newExecutor()
	if _, err := exec.Apply(filepath.Join(tmpDir, "x.txt"), fsops.WriteAction{Content: []byte("x")}, true); err != nil {
		t.Fatal(err)
	}

	exec.Rollback()

	if got := exec.Dump(); len(got) != 0 {
		t.Errorf("dump after rollback = %v, want empty", got)
	}
	// Rollback on the now-empty journal is a safe no-op.
	if failed := exec.Rollback(); failed != 0 {
		t.Errorf("rollback of empty journal reported %d failures", failed)
	}
}

func TestApply_ReadAndFind_DoNotJournal(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.txt")
	writeFile(t, path, "hello")

	exec := newExecutor()

	res, err := exec.Apply(path, fsops.ReadAction{}, true)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(res.Content) != "hello" {
		t.Errorf("read content = %q", res.Content)
	}

	if _, err := exec.Apply(path, fsops.FindAction{}, true); err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if n := exec.JournalLen(); n != 0 {
		t.Errorf("read/find journaled %d entries, want 0", n)
	}
}

func TestApply_NonCriticalResolution_ReturnsAbsent(t *testing.T) {
	exec := newExecutor(t.TempDir())

	res, err := exec.Apply("missing.txt", fsops.DeleteAction{}, false)
	if err != nil {
		t.Fatalf("non-critical miss should not error, got %v", err)
	}
	if res.Present {
		t.Error("result should be absent")
	}
	if n := exec.JournalLen(); n != 0 {
		t.Errorf("absent result journaled %d entries", n)
	}
}

func TestApply_CriticalResolution_Fails(t *testing.T) {
	exec := newExecutor(t.TempDir())

	_, err := exec.Apply("missing.txt", fsops.ReadAction{}, true)

	var notFound *fsops.PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want *PathNotFoundError, got %v", err)
	}
}

func TestApply_MutationFailure_ErrorsRegardlessOfFlag(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "full")
	if err := os.MkdirAll(filepath.Join(dir, "child"), 0755); err != nil {
		t.Fatal(err)
	}

	exec := newExecutor()

	// The directory resolves, but os.Remove on a non-empty directory
	// fails; the flag must not soften that.
	_, err := exec.Apply(dir, fsops.DeleteAction{}, false)

	var mutation *fsops.MutationError
	if !errors.As(err, &mutation) {
		t.Fatalf("want *MutationError, got %v", err)
	}
	if mutation.Op != "delete" {
		t.Errorf("op = %q, want delete", mutation.Op)
	}
}

func TestApply_DeleteDirectoryRefused_NothingJournaled(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "empty")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	exec := newExecutor()

	// A directory's contents cannot be captured as a reversal recipe,
	// so the delete must be refused before anything touches disk.
	_, err := exec.Apply(dir, fsops.DeleteAction{}, true)

	var mutation *fsops.MutationError
	if !errors.As(err, &mutation) {
		t.Fatalf("want *MutationError, got %v", err)
	}
	if n := exec.JournalLen(); n != 0 {
		t.Errorf("refused delete journaled %d entries", n)
	}
	if _, statErr := os.Stat(dir); statErr != nil {
		t.Errorf("directory should be untouched: %v", statErr)
	}

	if failed := exec.Rollback(); failed != 0 {
		t.Errorf("rollback reported %d failures", failed)
	}
	if _, statErr := os.Stat(dir); statErr != nil {
		t.Error("directory lost after rollback")
	}
}

func TestApply_WriteOntoDirectoryRefused_DirSurvivesRollback(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "site")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	exec := newExecutor()

	// The target resolves to a directory; its prior state cannot be
	// recorded as file content, so the write is refused up front rather
	// than journaled with a did-not-exist marker.
	_, err := exec.Apply(dir, fsops.WriteAction{Content: []byte("clobber")}, true)

	var mutation *fsops.MutationError
	if !errors.As(err, &mutation) {
		t.Fatalf("want *MutationError, got %v", err)
	}
	if n := exec.JournalLen(); n != 0 {
		t.Errorf("refused write journaled %d entries", n)
	}

	exec.Rollback()

	info, statErr := os.Stat(dir)
	if statErr != nil || !info.IsDir() {
		t.Errorf("pre-existing directory removed by rollback: %v", statErr)
	}
}

// A copy whose destination is then moved by a later entry: rollback must
// chain through cleanly because entries reverse in strict LIFO order.
func TestRollback_CopyThenMoveOfDestination(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	copied := filepath.Join(tmpDir, "b.txt")
	moved := filepath.Join(tmpDir, "c.txt")
	writeFile(t, src, "root")

	exec := newExecutor()
	if _, err := exec.Apply(src, fsops.CopyAction{Dest: copied}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := exec.Apply(copied, fsops.MoveAction{Dest: moved}, true); err != nil {
		t.Fatal(err)
	}

	failed := exec.Rollback()

	// Undo the move first (c → b), then undo the copy (remove b).
	if failed != 0 {
		t.Fatalf("rollback reported %d failures", failed)
	}
	if _, err := os.Stat(moved); !os.IsNotExist(err) {
		t.Error("moved copy should be gone")
	}
	if _, err := os.Stat(copied); !os.IsNotExist(err) {
		t.Error("intermediate copy should be gone")
	}
	if got := readFile(t, src); got != "root" {
		t.Errorf("source altered, got %q", got)
	}
}
