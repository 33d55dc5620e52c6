// Package logging builds the structured logger. The TUI owns stdout, so logs
// go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/google/uuid"
)

// FileName is the log file created under $XDG_STATE_HOME/tuiseum.
const FileName = "tuiseum.log"

// DefaultPath returns the log file location, creating parent directories.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("tuiseum", FileName))
}

// ParseLevel maps a level name to a log level. Unknown names fall back to info.
func ParseLevel(name string) log.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether name is a level ParseLevel understands.
func ValidLevel(name string) bool {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return true
	}
	_, err := log.ParseLevel(name)
	return err == nil
}

// New returns a logger writing to w. Every logger carries a short session id
// so that interleaved runs can be told apart in a shared file.
func New(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "tuiseum",
		Level:           ParseLevel(level),
	})
	return l.With("session", uuid.NewString()[:8])
}

// Open opens (or creates) the log file at path, or at DefaultPath when path is
// empty, and returns a logger writing to it. Close the returned closer on exit.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving log path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f, nil
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return log.New(io.Discard)
}
