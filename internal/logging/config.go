// Package logging provides structured JSON file logging for
// advisor-admin.
package logging

import (
	"os"
	"path/filepath"

	"github.com/advisorlane/advisor-admin/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// Command names the running subcommand; it becomes part of the log
	// file name.
	Command string
	PID     int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig creates a logging Config from the global
// configuration. The debug flag forces the level to debug and the
// quiet flag forces it to error; debug wins when both are set.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.MaxFiles = config.GetInt("logging_max_files", 10)
	switch {
	case config.GetBool("debug", false):
		cfg.Level = "debug"
	case config.GetBool("quiet", false):
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns the directory log files are written to. It prefers
// {state_dir}/logs and falls back to a directory under os.TempDir()
// when the state directory cannot be created or written.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		logDir := filepath.Join(stateDir, "logs")
		if err := os.MkdirAll(logDir, 0700); err == nil && dirWritable(logDir) {
			return logDir, nil
		}
	}
	fallback := filepath.Join(os.TempDir(), "advisor-admin", "logs")
	if err := os.MkdirAll(fallback, 0700); err != nil {
		return "", err
	}
	return fallback, nil
}

// dirWritable checks write access by creating and removing a probe file.
func dirWritable(dir string) bool {
	probe := filepath.Join(dir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
