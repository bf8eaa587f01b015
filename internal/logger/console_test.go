package logger

import (
	"bytes"
	"strings"
	"testing"
)

// Writing to a bytes.Buffer never enables color, so output is plain text.

func TestConsoleLoggerLevelPrefixes(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "debug")

	cl.Debugf("copying %s", "a.jpg")
	cl.Infof("mirror updated")
	cl.Warnf("no extension on %s", "README")
	cl.Errorf("skipping %s", "b.jpg")
	cl.Criticalf("root missing")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"DEBUG: copying a.jpg",
		"INFO: mirror updated",
		"WARNING: no extension on README",
		"ERROR: skipping b.jpg",
		"CRITICAL: root missing",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestConsoleLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Debugf("hidden")
	cl.Infof("hidden")
	cl.Warnf("shown")
	cl.Errorf("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "WARNING: shown") || !strings.Contains(out, "ERROR: shown") {
		t.Errorf("output missing expected messages: %q", out)
	}
}

func TestConsoleLoggerDefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "")

	cl.Debugf("hidden")
	cl.Infof("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug messages should be filtered at the default level")
	}
	if !strings.Contains(buf.String(), "INFO: shown") {
		t.Error("info messages should pass at the default level")
	}
}

func TestConsoleLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "loud")

	cl.Debugf("hidden")
	cl.Infof("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("invalid level should fall back to info filtering")
	}
}

func TestConsoleLoggerCriticalAlwaysPasses(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "critical")

	cl.Errorf("hidden")
	cl.Criticalf("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("error should be filtered at critical level: %q", out)
	}
	if !strings.Contains(out, "CRITICAL: shown") {
		t.Errorf("critical message missing: %q", out)
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "debug")

	// Must not panic.
	cl.Debugf("x")
	cl.Infof("x")
	cl.Warnf("x")
	cl.Errorf("x")
	cl.Criticalf("x")
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"  WARN  ", "warn"},
		{"Critical", "critical"},
		{"", "info"},
		{"nonsense", "info"},
	}
	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Compile-time checks that both implementations satisfy Logger.
var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)
