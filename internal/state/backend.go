package state

import (
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/intern"
)

// BackendKind identifies the execution environment behind a backend.
// The set is closed for now; KindGeneric absorbs anything unrecognized
// so adding a kind never breaks existing sources.
type BackendKind int

const (
	KindGeneric BackendKind = iota
	KindDocker
	KindTES
	KindLocal
)

// String returns the lowercase kind name used in config and views.
func (k BackendKind) String() string {
	switch k {
	case KindDocker:
		return "docker"
	case KindTES:
		return "tes"
	case KindLocal:
		return "local"
	default:
		return "generic"
	}
}

// ParseKind maps a kind name to its enum value, defaulting to KindGeneric.
func ParseKind(s string) BackendKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "docker":
		return KindDocker
	case "tes":
		return KindTES
	case "local":
		return KindLocal
	default:
		return KindGeneric
	}
}

// Health grades how reachable a backend currently is. A single failed
// poll degrades a backend; repeated failures past the configured
// threshold mark it unreachable.
type Health int

const (
	HealthUnknown Health = iota
	HealthHealthy
	HealthDegraded
	HealthUnreachable
)

// String returns the human-readable health name.
func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "Healthy"
	case HealthDegraded:
		return "Degraded"
	case HealthUnreachable:
		return "Unreachable"
	default:
		return "Unknown"
	}
}

// BackendRecord is the latest known state of one execution backend.
// ActiveTasks always equals the number of this backend's tasks with
// status in {Queued, Running}; the reducer maintains it incrementally.
// TotalTasks counts all currently tracked tasks assigned to the backend,
// terminal ones included. Like TaskRecord, a published record is never
// mutated in place; the utilization ring is a shared live handle.
type BackendRecord struct {
	ID          intern.ID
	Name        string
	Kind        BackendKind
	Health      Health
	ActiveTasks int
	TotalTasks  int
	Utilization *SampleRing
	LastSeen    time.Time
}

// Clone returns a copy of the record sharing the utilization ring.
func (r *BackendRecord) Clone() *BackendRecord {
	c := *r
	return &c
}
