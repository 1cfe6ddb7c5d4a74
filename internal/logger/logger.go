// Package logger sets up the structured logger shared by sockwatch
// components.
//
// The dashboard owns the terminal, so logs never go to stdout. They are
// written to a file when one is configured and discarded otherwise.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DebugEnv forces debug level when set to any non-empty value.
const DebugEnv = "SOCKWATCH_DEBUG"

const prefix = "sockwatch"

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	if os.Getenv(DebugEnv) != "" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
}

// ParseLevel reads one of debug, info, warn or error. An empty string
// means info.
func ParseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", s)
	}
	return level, nil
}

// Open returns a logger appending to the file at path, creating parent
// directories as needed. An empty path gives a logger that discards
// everything. The returned closer releases the file.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return New(io.Discard, lvl), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, lvl), f, nil
}

// Noop returns a logger that discards all messages.
func Noop() *log.Logger {
	return log.New(io.Discard)
}

// NewBuffer returns a debug-level logger capturing plain-text output in
// the returned buffer. Useful for asserting on log lines in tests.
func NewBuffer() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	l.SetFormatter(log.TextFormatter)
	return l, &buf
}
