package ui

// Unicode symbols for task status indicators.
const (
	SymbolQueued    = "○" // Waiting to start
	SymbolRunning   = "◐" // In progress (static fallback; the dash animates)
	SymbolCompleted = "✓" // Finished successfully
	SymbolFailed    = "✗" // Finished with an error
	SymbolCancelled = "⊘" // Stopped before finishing
)

// Unicode symbols for backend health.
const (
	SymbolHealthy     = "◉" // Responding normally
	SymbolDegraded    = "◔" // Some recent polls failed
	SymbolUnreachable = "◌" // Past the failure threshold
	SymbolUnknown     = "·" // Never successfully polled
)

// Result symbols for one-shot command output (init, sources).
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
)
