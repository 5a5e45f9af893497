package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// A nil logger must be a no-op, not a nil func.
	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestDebugf(t *testing.T) {
	original := Logf
	defer func() {
		Logf = original
		SetDebug(false)
	}()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	SetDebug(false)
	Debugf("frame %d", 1)
	if len(lines) != 0 {
		t.Fatalf("expected debug output to be dropped, got %v", lines)
	}

	SetDebug(true)
	if !DebugEnabled() {
		t.Fatal("expected debug to be enabled")
	}
	Debugf("frame %d", 2)
	if len(lines) != 1 || lines[0] != "[debug] frame 2" {
		t.Fatalf("unexpected debug output: %v", lines)
	}
}
