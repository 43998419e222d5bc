package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/logging"
)

func testExecutor() *fsops.Executor {
	return fsops.NewExecutor(fsops.NewResolver(nil), logging.NewSilentLogger())
}

func TestDispatch_PseudoTargetsBypassResolution(t *testing.T) {
	tmp := t.TempDir()
	exec := testExecutor()

	// Even with a file literally named "rollback" on disk, the pseudo
	// target wins: journaled changes are undone, not the file read.
	path := filepath.Join(tmp, "a.txt")
	if err := dispatch(exec, opSpec{Target: path, Action: "write", Content: "x"}, true); err != nil {
		t.Fatal(err)
	}
	if err := dispatch(exec, opSpec{Target: "rollback"}, true); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rollback pseudo-target did not undo the write")
	}
}

func TestDispatch_DumpDoesNotMutateJournal(t *testing.T) {
	tmp := t.TempDir()
	exec := testExecutor()

	if err := dispatch(exec, opSpec{Target: filepath.Join(tmp, "b.txt"), Action: "write", Content: "y"}, true); err != nil {
		t.Fatal(err)
	}
	if err := dispatch(exec, opSpec{Target: "dump"}, true); err != nil {
		t.Fatal(err)
	}

	if exec.JournalLen() != 1 {
		t.Errorf("dump changed the journal, len = %d", exec.JournalLen())
	}
}

func TestParseAction_RejectsUnknownAndIncomplete(t *testing.T) {
	if _, err := parseAction(opSpec{Action: "shred"}); err == nil {
		t.Error("unknown action accepted")
	}
	if _, err := parseAction(opSpec{Action: "copy"}); err == nil {
		t.Error("copy without dest accepted")
	}
	if _, err := parseAction(opSpec{Action: "move"}); err == nil {
		t.Error("move without dest accepted")
	}
}

func TestLoadScript_ParsesOperationList(t *testing.T) {
	tmp := t.TempDir()
	script := filepath.Join(tmp, "ops.yml")
	content := `- target: a.txt
  action: write
  content: hello
- target: dump
`
	if err := os.WriteFile(script, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ops, err := loadScript(script)
	if err != nil {
		t.Fatalf("loadScript failed: %v", err)
	}
	if len(ops) != 2 || ops[0].Action != "write" || ops[1].Target != "dump" {
		t.Errorf("parsed ops = %+v", ops)
	}
}
