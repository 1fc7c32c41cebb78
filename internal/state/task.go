package state

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/intern"
)

// TaskStatus identifies where a task sits in its lifecycle.
type TaskStatus int

const (
	StatusQueued TaskStatus = iota
	StatusRunning
	StatusCompleted
	StatusFailed
	StatusCancelled
)

// String returns the human-readable status name.
func (s TaskStatus) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// IsActive reports whether the task counts toward its backend's
// active task count.
func (s TaskStatus) IsActive() bool {
	return s == StatusQueued || s == StatusRunning
}

// CanTransition reports whether a task may move from one status to another.
// The machine is Queued -> Running -> {Completed, Failed, Cancelled}, with
// Queued -> Cancelled for tasks cancelled before they start. Repeating the
// current status is a refresh, not a transition, and is always allowed.
func CanTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusQueued:
		return to == StatusRunning || to == StatusCancelled
	case StatusRunning:
		return to == StatusCompleted || to == StatusFailed || to == StatusCancelled
	default:
		return false
	}
}

// TaskRecord is the latest known state of one tracked task. Records are
// immutable once published in a snapshot; the reducer clones a record
// before changing it. The sample ring is the exception: it is a live
// handle shared across clones and guarded by its own lock.
type TaskRecord struct {
	ID        intern.ID
	Name      string
	Backend   intern.ID
	Status    TaskStatus
	Progress  float64
	Samples   *SampleRing
	CreatedAt time.Time
	UpdatedAt time.Time
	Err       string
}

// Clone returns a copy of the record sharing the sample ring.
func (r *TaskRecord) Clone() *TaskRecord {
	c := *r
	return &c
}
