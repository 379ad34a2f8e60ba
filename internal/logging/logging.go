// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"

	"github.com/abhisek/studyiz/internal/kv"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An unknown level is an error.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// DefaultLogPath returns the per-user log file location.
func DefaultLogPath() (string, error) {
	scope := gap.NewScope(gap.User, "studyiz")
	p, err := scope.DataPath("studyiz.log")
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return p, nil
}

// NewFile returns a logger appending to path, for use while the TUI owns
// the terminal. The returned closer closes the file.
func NewFile(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		var err error
		if path, err = DefaultLogPath(); err != nil {
			return nil, nil, err
		}
	}
	if err := kv.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	l.SetTimeFormat(time.RFC3339)
	l.SetFormatter(log.LogfmtFormatter)
	return l, f, nil
}
