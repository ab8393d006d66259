// Package logging builds the application logger. The TUI owns the terminal,
// so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const prefix = "hifi"

// DefaultPath returns $XDG_STATE_HOME/hifi/hifi.log, creating the directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("hifi", "hifi.log"))
}

// New creates a logger writing to w with timestamps and caller reporting.
func New(w io.Writer, debug bool) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Prefix:          prefix,
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Open creates a logger appending to path. An empty path uses DefaultPath.
// The returned closer closes the file.
func Open(path string, debug bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(f, debug), f, nil
}

// With returns a child logger tagged with the given key-value pairs.
func With(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}
