package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taskdeck/taskdeck/internal/intern"
	"github.com/taskdeck/taskdeck/internal/state"
)

// Snapshot is an immutable, revision-stamped view of the dashboard
// state. Records reachable from a snapshot are never mutated by the
// reducer; their sample rings are live handles that keep streaming
// readings under their own locks.
type Snapshot struct {
	Revision uint64
	TakenAt  time.Time
	Paused   bool
	Rejected uint64

	Filter        state.StatusFilter
	BackendFilter intern.ID
	Sort          state.SortOrder

	interner *intern.Table
	tasks    map[intern.ID]*state.TaskRecord
	backends map[intern.ID]*state.BackendRecord
}

func emptySnapshot(st *state.AppState, now time.Time) *Snapshot {
	return &Snapshot{
		TakenAt:  now,
		interner: st.Interner,
		tasks:    make(map[intern.ID]*state.TaskRecord),
		backends: make(map[intern.ID]*state.BackendRecord),
	}
}

// Resolve returns the string behind an interned id.
func (s *Snapshot) Resolve(id intern.ID) string {
	return s.interner.Resolve(id)
}

// Task looks up one task record.
func (s *Snapshot) Task(id intern.ID) (*state.TaskRecord, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Backend looks up one backend record.
func (s *Snapshot) Backend(id intern.ID) (*state.BackendRecord, bool) {
	b, ok := s.backends[id]
	return b, ok
}

// TaskCount returns the number of tracked tasks, ignoring filters.
func (s *Snapshot) TaskCount() int {
	return len(s.tasks)
}

// BackendCount returns the number of tracked backends.
func (s *Snapshot) BackendCount() int {
	return len(s.backends)
}

// Tasks returns the records passing the snapshot's filter criteria,
// ordered per its sort order.
func (s *Snapshot) Tasks() []*state.TaskRecord {
	out := make([]*state.TaskRecord, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !s.Filter.Matches(t.Status) {
			continue
		}
		if s.BackendFilter != intern.None && t.Backend != s.BackendFilter {
			continue
		}
		out = append(out, t)
	}
	s.sortTasks(out)
	return out
}

// AllTasks returns every task record ordered by name, ignoring filters.
func (s *Snapshot) AllTasks() []*state.TaskRecord {
	out := make([]*state.TaskRecord, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Snapshot) sortTasks(ts []*state.TaskRecord) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		switch s.Sort {
		case state.SortByName:
			return a.Name < b.Name
		case state.SortByStatus:
			if a.Status != b.Status {
				return a.Status < b.Status
			}
			return a.Name < b.Name
		case state.SortByProgress:
			if a.Progress != b.Progress {
				return a.Progress > b.Progress
			}
			return a.Name < b.Name
		default: // SortByUpdated, newest first
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return a.Name < b.Name
		}
	})
}

// Backends returns all backend records sorted by name.
func (s *Snapshot) Backends() []*state.BackendRecord {
	out := make([]*state.BackendRecord, 0, len(s.backends))
	for _, b := range s.backends {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// StatusCounts tallies tasks per status, ignoring filters.
func (s *Snapshot) StatusCounts() map[state.TaskStatus]int {
	counts := make(map[state.TaskStatus]int)
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

// ActiveTasks sums the backends' active task counts.
func (s *Snapshot) ActiveTasks() int {
	total := 0
	for _, b := range s.backends {
		total += b.ActiveTasks
	}
	return total
}

// Publisher hands immutable snapshots from the reducer to readers.
// Current never blocks, and readers never block the reducer: the
// handoff is a single atomic pointer swap.
//
// Pause freezes the read side only. While frozen, newly published
// snapshots are parked and Current keeps returning the pause-point
// view; the resume snapshot (Paused false) swaps in immediately with
// everything that accumulated behind the freeze.
type Publisher struct {
	cur atomic.Pointer[Snapshot]

	mu      sync.Mutex
	frozen  bool
	pending *Snapshot
}

// NewPublisher seeds the publisher so Current is never nil.
func NewPublisher(initial *Snapshot) *Publisher {
	p := &Publisher{}
	p.cur.Store(initial)
	return p
}

// Current returns the latest published snapshot. Two calls with no
// intervening publish return the identical pointer, so a revision
// compare is enough to decide whether to redraw.
func (p *Publisher) Current() *Snapshot {
	return p.cur.Load()
}

// Publish makes s the current snapshot, honoring the pause freeze.
func (p *Publisher) Publish(s *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen && s.Paused {
		p.pending = s
		return
	}
	p.cur.Store(s)
	p.frozen = s.Paused
	p.pending = nil
}

// Pending reports whether a snapshot is parked behind a pause freeze.
func (p *Publisher) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}
