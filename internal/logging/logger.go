package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/advisorlane/advisor-admin/internal/colors"
)

// Logger is the structured logging interface used across the
// application. Implementations write JSON lines to a per-process log
// file with sensitive values redacted.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a derived logger carrying additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes buffered output and closes the log file.
	Shutdown() error
}

// fileLogger writes JSON log lines through charmbracelet/log.
type fileLogger struct {
	mu       sync.RWMutex
	clogger  *clog.Logger
	file     *os.File
	redactor *redactor
	fields   map[string]any
	path     string
}

// Init builds a Logger for the given configuration. A disabled config
// yields a no-op logger. Otherwise the log directory is resolved, old
// files rotated out, and a fresh file opened with a
// timestamp/PID/command name so concurrent processes never collide.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		// Rotation failure is not fatal; keep logging.
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	fname := fmt.Sprintf("%s%s_PID%d_%s%s",
		logFilePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"),
		logFileSuffix)
	path := filepath.Join(logDir, fname)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	clogger = clogger.With("pid", cfg.PID, "command", cfg.Command)

	return &fileLogger{
		clogger:  clogger,
		file:     f,
		redactor: newRedactor(),
		fields:   make(map[string]any),
		path:     path,
	}, nil
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

// log merges the base fields with the call-site args, redacts sensitive
// values, and hands the pair list to the underlying logger.
func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := make([]any, 0, len(l.fields)*2+len(args))
	for k, v := range l.fields {
		all = append(all, k, v)
	}
	all = append(all, args...)
	l.clogger.Log(level, msg, l.redactor.redact(all)...)
}

func (l *fileLogger) With(args ...any) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make(map[string]any, len(l.fields)+len(args)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	// The derived logger shares the file and underlying clogger.
	return &fileLogger{
		clogger:  l.clogger,
		file:     l.file,
		redactor: l.redactor,
		fields:   fields,
		path:     l.path,
	}
}

func (l *fileLogger) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *fileLogger) filePath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// noopLogger discards all output.
type noopLogger struct{}

// Noop returns a logger that discards everything. Useful as a default
// for components constructed without logging.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

var (
	globalLogger     Logger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

// InitGlobal initializes the process-wide logger from the global
// configuration. Only the first call initializes; later calls are
// no-ops. Console output via colors is mirrored into the log file.
func InitGlobal() error {
	var err error
	globalLoggerOnce.Do(func() {
		globalLogger, err = Init(FromGlobalConfig())
	})
	if err == nil && globalLogger != nil {
		colors.SetLogger(globalLogger)
		if path := CurrentLogFile(); path != "" {
			colors.Info("Logging to file:", path)
		}
	}
	return err
}

// GetGlobal returns the global logger, or a no-op logger when logging
// was never initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// Debug logs through the global logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// Info logs through the global logger.
func Info(msg string, args ...any) { GetGlobal().Info(msg, args...) }

// Warn logs through the global logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs through the global logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With derives a logger with extra fields from the global logger.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes the global logger's file if one is open.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger != nil {
		return globalLogger.Shutdown()
	}
	return nil
}

// CurrentLogFile returns the active log file path, or "" when logging
// is disabled.
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if impl, ok := globalLogger.(*fileLogger); ok {
		return impl.filePath()
	}
	return ""
}
