package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/internal/logger"
)

// TerminalCheck reports whether stdout is an interactive terminal. The
// dashboard needs one; the one-shot commands do not.
type TerminalCheck struct{}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return "ENVIRONMENT" }

func (c *TerminalCheck) Run() CheckResult {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Standard output is not a terminal",
			Suggestion: "'taskdeck dash' needs a TTY; 'taskdeck sources' works without one",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Interactive terminal",
	}
}

// LogFileCheck verifies the log file location is writable. The
// dashboard owns the terminal, so an unwritable log file means flying
// blind.
type LogFileCheck struct{}

func (c *LogFileCheck) Name() string     { return "log_file" }
func (c *LogFileCheck) Category() string { return "ENVIRONMENT" }

func (c *LogFileCheck) Run() CheckResult {
	path := logger.LogPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Cannot create log directory: %v", err),
			Suggestion: "Check permissions on " + filepath.Dir(path),
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Log file not writable: %v", err),
			Suggestion: "Check permissions on " + path,
		}
	}
	f.Close()

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Log file: %s", path),
	}
}
