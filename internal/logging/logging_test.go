package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelWarn, &buf)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")
	l.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages leaked: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "also shown") {
		t.Errorf("expected messages missing: %s", out)
	}
}

func TestLogger_FieldsFormatted(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelInfo, &buf)

	l.Error("rollback step failed", F("op", "move"), F("path", "/tmp/x"))

	out := buf.String()
	if !strings.Contains(out, "op=move") || !strings.Contains(out, "path=/tmp/x") {
		t.Errorf("fields missing: %s", out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("level tag missing: %s", out)
	}
}

func TestWithFields_PersistAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelInfo, &buf).WithFields(F("component", "journal"))

	l.Info("first")
	l.Info("second")

	out := buf.String()
	if strings.Count(out, "component=journal") != 2 {
		t.Errorf("persistent field not on every line: %s", out)
	}
}

func TestSetDefault_SwapsGlobalLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(NewLogger(LevelDebug, &buf))

	Default().Debug("swapped in")

	if !strings.Contains(buf.String(), "swapped in") {
		t.Errorf("default logger not swapped: %q", buf.String())
	}
}

func TestSilentLogger_NeverWrites(t *testing.T) {
	l := NewSilentLogger()
	l.Error("nothing happens")
}
