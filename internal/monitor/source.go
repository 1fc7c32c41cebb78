package monitor

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/state"
)

// Source polls one execution backend. Implementations must be safe to
// poll repeatedly from a single goroutine; Poll should honor ctx and
// return promptly once it is done.
type Source interface {
	// Name identifies the backend. It doubles as the backend id on the
	// bus, so it must be stable across polls.
	Name() string

	// Kind reports what sort of backend this source watches.
	Kind() state.BackendKind

	// Poll fetches the backend's current tasks and health. A non-nil
	// error means the backend could not be contacted; partial results
	// are not returned.
	Poll(ctx context.Context) (*Report, error)
}

// Report is one complete observation of a backend. The monitor owns
// the diffing; sources just describe what they saw.
type Report struct {
	Backend BackendState
	Tasks   []TaskState
}

// BackendState describes the backend itself at poll time.
type BackendState struct {
	// Health defaults to Healthy when left Unknown on a successful
	// poll.
	Health state.Health

	// CPU is percent utilization, Memory is bytes in use. Only read
	// when HasUsage is set; not every backend can measure itself.
	CPU      float64
	Memory   float64
	HasUsage bool
}

// TaskState describes one task as the backend reported it. The struct
// is comparable: the monitor suppresses events for tasks whose state
// matches the previous poll exactly.
type TaskState struct {
	ID       string
	Name     string
	Status   state.TaskStatus
	Progress float64
	Err      string

	// CPU percent and memory bytes for the task, when the backend can
	// measure them.
	CPU      float64
	Memory   float64
	HasUsage bool
}
