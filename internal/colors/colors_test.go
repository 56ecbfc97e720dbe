package colors

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

func captureStream(t *testing.T, stream **os.File, fn func()) string {
	t.Helper()

	old := *stream
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	*stream = w
	defer func() { *stream = old }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read from pipe: %v", err)
	}
	return buf.String()
}

func TestError(t *testing.T) {
	output := captureStream(t, &os.Stderr, func() {
		Error("something went wrong")
	})
	if !strings.Contains(output, "Error:") {
		t.Errorf("Error output missing 'Error:' prefix: %q", output)
	}
	if !strings.Contains(output, "something went wrong") {
		t.Errorf("Error output missing message: %q", output)
	}
	if !strings.Contains(output, Red) {
		t.Errorf("Error output missing red color code: %q", output)
	}
}

func TestSuccess(t *testing.T) {
	output := captureStream(t, &os.Stdout, func() {
		Success("operation completed")
	})
	if !strings.Contains(output, "✓") {
		t.Errorf("Success output missing checkmark: %q", output)
	}
	if !strings.Contains(output, "operation completed") {
		t.Errorf("Success output missing message: %q", output)
	}
	if !strings.Contains(output, Green) {
		t.Errorf("Success output missing green color code: %q", output)
	}
}

func TestWarning(t *testing.T) {
	output := captureStream(t, &os.Stderr, func() {
		Warning("this is a warning")
	})
	if !strings.Contains(output, "Warning:") {
		t.Errorf("Warning output missing 'Warning:' prefix: %q", output)
	}
	if !strings.Contains(output, "this is a warning") {
		t.Errorf("Warning output missing message: %q", output)
	}
	if !strings.Contains(output, Yellow) {
		t.Errorf("Warning output missing yellow color code: %q", output)
	}
}

func TestInfo(t *testing.T) {
	output := captureStream(t, &os.Stdout, func() {
		Info("informational message")
	})
	if !strings.Contains(output, "informational message") {
		t.Errorf("Info output missing message: %q", output)
	}
	if !strings.Contains(output, Blue) {
		t.Errorf("Info output missing blue color code: %q", output)
	}
}

func TestDebugEnabled(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	output := captureStream(t, &os.Stderr, func() {
		Debug("debug message")
	})
	if !strings.Contains(output, "Debug:") {
		t.Errorf("Debug output missing 'Debug:' prefix: %q", output)
	}
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug output missing message: %q", output)
	}
	if !strings.Contains(output, Cyan) {
		t.Errorf("Debug output missing cyan color code: %q", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	SetDebug(false)
	output := captureStream(t, &os.Stderr, func() {
		Debug("debug message")
	})
	if output != "" {
		t.Errorf("Debug output should be empty when disabled, got: %q", output)
	}
}

func TestMultipleArguments(t *testing.T) {
	output := captureStream(t, &os.Stdout, func() {
		Info("multiple", "arguments", "joined")
	})
	expected := "multiple arguments joined"
	if !strings.Contains(output, expected) {
		t.Errorf("Info output missing joined arguments: got %q, want substring %q", output, expected)
	}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (r *recordingLogger) log(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, level+": "+msg)
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.log("debug", msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.log("info", msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.log("warn", msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.log("error", msg) }

func TestLoggerMirroring(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	captureStream(t, &os.Stderr, func() {
		Error("remote fetch failed")
		Warning("falling back to synthetic data")
	})

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 mirrored entries, got %d: %v", len(rec.entries), rec.entries)
	}
	if rec.entries[0] != "error: remote fetch failed" {
		t.Errorf("unexpected first entry: %q", rec.entries[0])
	}
	if rec.entries[1] != "warn: falling back to synthetic data" {
		t.Errorf("unexpected second entry: %q", rec.entries[1])
	}
}
