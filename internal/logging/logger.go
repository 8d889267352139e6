// Package logging provides the file-backed logger the application writes
// diagnostics to. Compile-time fragment drops land here so users can inspect
// them after the fact.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the log file created inside the configured log directory.
const FileName = "loom.log"

// Logger appends timestamped lines to the log file. A nil Logger discards
// everything, so callers never need to guard their Printf sites.
type Logger struct {
	file *os.File
}

// New creates (or reuses) the log file under dir.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
}
