package logging

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	output := captureStderr(t, func() {
		NewConsoleLogger(true).Verbose("test message: %s", "value")
	})

	expected := "[VERBOSE] test message: value\n"
	if output != expected {
		t.Errorf("Expected %q, got %q", expected, output)
	}
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	output := captureStderr(t, func() {
		NewConsoleLogger(false).Verbose("test message: %s", "value")
	})

	if output != "" {
		t.Errorf("Expected no output, got %q", output)
	}
}

func TestConsoleLogger_Info(t *testing.T) {
	output := captureStderr(t, func() {
		NewConsoleLogger(false).Info("inserted %d log(s)", 3)
	})

	expected := "inserted 3 log(s)\n"
	if output != expected {
		t.Errorf("Expected %q, got %q", expected, output)
	}
}

func TestConsoleLogger_Error(t *testing.T) {
	output := captureStderr(t, func() {
		NewConsoleLogger(false).Error("rollback failed: %v", "boom")
	})

	expected := "[ERROR] rollback failed: boom\n"
	if output != expected {
		t.Errorf("Expected %q, got %q", expected, output)
	}
}

func TestConsoleLogger_NoArgs(t *testing.T) {
	// A message with format verbs but no args must pass through verbatim.
	output := captureStderr(t, func() {
		NewConsoleLogger(false).Info("100%% done")
	})

	expected := "100%% done\n"
	if output != expected {
		t.Errorf("Expected %q, got %q", expected, output)
	}
}

func TestNullLogger_Discards(t *testing.T) {
	output := captureStderr(t, func() {
		l := NewNullLogger()
		l.Verbose("v")
		l.Info("i")
		l.Error("e")
	})

	if output != "" {
		t.Errorf("Expected no output, got %q", output)
	}
}
