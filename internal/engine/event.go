package engine

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/state"
)

// Event is the closed set of messages the reducer consumes. Events are
// immutable value objects; once sent they belong to the bus until the
// reducer applies them.
type Event interface {
	isEvent()
}

// TaskDelta carries the fields of one task update. Pointer fields
// distinguish "not reported this poll" from a genuine zero value.
// Backend is required the first time a task id is seen.
type TaskDelta struct {
	ID       string
	Name     string
	Backend  string
	Status   *state.TaskStatus
	Progress *float64
	Usage    *state.Sample
	Err      string
}

// TaskUpdated reports new or changed task state from a monitor.
type TaskUpdated struct {
	Delta TaskDelta
}

// TaskRemoved reports a source-confirmed task removal.
type TaskRemoved struct {
	ID string
}

// BackendDelta carries the fields of one backend update. HealthUnknown
// means the poll did not grade health; a zero SeenAt means it made no
// contact (failure reports leave LastSeen untouched).
type BackendDelta struct {
	ID          string
	Name        string
	Kind        state.BackendKind
	Health      state.Health
	Utilization *state.Sample
	SeenAt      time.Time
}

// BackendUpdated reports backend health or utilization changes.
type BackendUpdated struct {
	Delta BackendDelta
}

// BackendRemoved reports a source-confirmed backend removal.
type BackendRemoved struct {
	ID string
}

// CommandKind enumerates the user commands the reducer understands.
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdCycleSort
	CmdCycleStatusFilter
	CmdCycleBackendFilter
	CmdResetFilters
)

// String returns the command name for logging.
func (k CommandKind) String() string {
	switch k {
	case CmdTogglePause:
		return "toggle-pause"
	case CmdCycleSort:
		return "cycle-sort"
	case CmdCycleStatusFilter:
		return "cycle-status-filter"
	case CmdCycleBackendFilter:
		return "cycle-backend-filter"
	case CmdResetFilters:
		return "reset-filters"
	default:
		return "unknown"
	}
}

// UserCommand is user input routed through the same bus as monitor
// events, so view criteria changes stay ordered with state changes.
type UserCommand struct {
	Kind CommandKind
}

// Tick drives time-based housekeeping such as the terminal-task
// retention sweep.
type Tick struct {
	At time.Time
}

func (TaskUpdated) isEvent()    {}
func (TaskRemoved) isEvent()    {}
func (BackendUpdated) isEvent() {}
func (BackendRemoved) isEvent() {}
func (UserCommand) isEvent()    {}
func (Tick) isEvent()           {}

// StatusOf returns a pointer for use in TaskDelta.Status.
func StatusOf(s state.TaskStatus) *state.TaskStatus {
	return &s
}

// ProgressOf returns a pointer for use in TaskDelta.Progress.
func ProgressOf(p float64) *float64 {
	return &p
}
