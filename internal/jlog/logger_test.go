package jlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Warn, "test")
	l.SetOutput(&buf)

	l.Debugf("debug line")
	l.Infof("info line")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged below Warn, got %q", buf.String())
	}

	l.Warnf("warn line")
	if !strings.Contains(buf.String(), "warn line") {
		t.Fatalf("missing warn line in %q", buf.String())
	}
}

func TestLoggerIncludesComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Debug, "scheduler")
	l.SetOutput(&buf)

	l.Errorf("boom %d", 42)
	out := buf.String()

	for _, want := range []string{"ERROR", "scheduler", "boom 42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestSetLevelChangesFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Error, "test")
	l.SetOutput(&buf)

	l.Warnf("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged, got %q", buf.String())
	}

	l.SetLevel(Warn)
	l.Warnf("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("missing expected line in %q", buf.String())
	}
}
