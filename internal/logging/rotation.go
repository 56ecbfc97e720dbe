package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	logFilePrefix = "advisor-admin_"
	logFileSuffix = ".log"
)

// rotate deletes the oldest "advisor-admin_*.log" files in dir so that
// at most maxFiles remain. Files that do not match the naming pattern
// are left alone.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type logFile struct {
		path  string
		mtime time.Time
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		lf := logFile{path: filepath.Join(dir, name)}
		if info, err := entry.Info(); err == nil {
			lf.mtime = info.ModTime()
		}
		files = append(files, lf)
	}
	if len(files) <= maxFiles {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].mtime.Equal(files[j].mtime) {
			return files[i].path < files[j].path
		}
		return files[i].mtime.Before(files[j].mtime)
	})
	for _, f := range files[:len(files)-maxFiles] {
		// Removal failures are not fatal; the next rotation retries.
		os.Remove(f.path)
	}
	return nil
}
