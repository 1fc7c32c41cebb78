// Package logger provides a simple logging interface for taskdeck components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The real backend is a logrus logger writing to a state file rather than
// stderr: the dashboard owns the terminal, so nothing may print over it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var (
	backendOnce sync.Once
	backend     *logrus.Logger
)

// fileBackend returns the process-wide logrus logger. It is created on first
// use and appends to the file at LogPath. If the file cannot be opened the
// backend discards output instead of failing.
func fileBackend() *logrus.Logger {
	backendOnce.Do(func() {
		backend = newBackend(nil, os.Getenv("TASKDECK_DEBUG") != "")
		f, err := openLogFile()
		if err != nil {
			backend.SetOutput(io.Discard)
			return
		}
		backend.SetOutput(f)
	})
	return backend
}

// newBackend builds a logrus logger with taskdeck's formatter and level.
// A nil writer leaves the logrus default output in place.
func newBackend(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	if w != nil {
		l.SetOutput(w)
	}
	return l
}

// LogPath returns the log file location: $XDG_STATE_HOME/taskdeck/taskdeck.log,
// falling back to ~/.local/state/taskdeck/taskdeck.log.
func LogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "taskdeck", "taskdeck.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskdeck.log"
	}
	return filepath.Join(home, ".local", "state", "taskdeck", "taskdeck.log")
}

func openLogFile() (*os.File, error) {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// fieldLogger adapts a logrus entry to the Logger interface.
type fieldLogger struct {
	entry *logrus.Entry
}

// New creates a file-backed logger tagged with a component field
// (e.g., "engine" or "monitor.docker"). Debug messages are only
// written when TASKDECK_DEBUG is set.
func New(component string) Logger {
	return &fieldLogger{entry: fileBackend().WithField("component", component)}
}

func (l *fieldLogger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *fieldLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *fieldLogger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *fieldLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// noopLogger implements Logger but discards all messages.
// Useful for testing or when logging is not desired.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Exported for use in test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
// Useful for testing that code logs expected messages.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger. It starts as a noop
// so that importing this package has no filesystem side effects; the CLI
// swaps in a file-backed logger at startup.
var defaultLogger Logger = Noop()

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
// This is useful for testing or to configure logging globally.
func SetDefault(l Logger) {
	defaultLogger = l
}
