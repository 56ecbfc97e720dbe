// Package colors prints user-facing console messages with ANSI colors
// and mirrors them to the structured logger when one is installed.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger mirrors console output into the structured log file.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled bool
	logger       Logger
	loggerMu     sync.RWMutex
)

func init() {
	if val := os.Getenv("ADVISOR_ADMIN_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetLogger installs the structured logger that console output is
// mirrored to. Pass nil to stop mirroring.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func mirror(fn func(Logger, string), msg string) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		fn(l, msg)
	}
}

func emit(w io.Writer, color, prefix, msg string) {
	if prefix != "" {
		fmt.Fprintf(w, "%s%s%s %s%s\n", color, prefix, Reset, msg, Reset)
		return
	}
	fmt.Fprintf(w, "%s%s%s\n", color, msg, Reset)
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror(func(l Logger, m string) { l.Error(m) }, msg)
	emit(os.Stderr, Red, "Error:", msg)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror(func(l Logger, m string) { l.Info(m, "type", "success") }, msg)
	emit(os.Stdout, Green, checkmark, msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror(func(l Logger, m string) { l.Warn(m) }, msg)
	emit(os.Stderr, Yellow, "Warning:", msg)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror(func(l Logger, m string) { l.Info(m) }, msg)
	emit(os.Stdout, Blue, "", msg)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	mirror(func(l Logger, m string) { l.Debug(m) }, msg)
	emit(os.Stderr, Cyan, "Debug:", msg)
}
