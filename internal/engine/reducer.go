package engine

import (
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/taskdeck/taskdeck/internal/intern"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/state"
)

// maxApplyBatch caps how many queued events are drained before a
// publish, bounding snapshot latency during bursts.
const maxApplyBatch = 64

// Reducer is the single-writer core loop. It owns AppState exclusively:
// every mutation happens on the reducer goroutine, which is what lets
// the stores run without locks of their own.
type Reducer struct {
	st        *state.AppState
	pub       *Publisher
	events    <-chan Event
	clock     clockwork.Clock
	log       logger.Logger
	ringCap   int
	retention time.Duration

	published uint64
	done      chan struct{}
}

// NewReducer wires a reducer to its event source and publisher.
func NewReducer(st *state.AppState, pub *Publisher, events <-chan Event, clock clockwork.Clock, log logger.Logger, ringCap int, retention time.Duration) *Reducer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Noop()
	}
	if ringCap <= 0 {
		ringCap = state.DefaultRingCapacity
	}
	return &Reducer{
		st:        st,
		pub:       pub,
		events:    events,
		clock:     clock,
		log:       log,
		ringCap:   ringCap,
		retention: retention,
		done:      make(chan struct{}),
	}
}

// Done closes once the reducer has drained the bus and published its
// final snapshot.
func (r *Reducer) Done() <-chan struct{} {
	return r.done
}

// Run consumes events until the bus closes. Call on a dedicated
// goroutine; it is the only goroutine allowed to touch AppState.
func (r *Reducer) Run() {
	defer close(r.done)
	for {
		ev, ok := <-r.events
		if !ok {
			r.publish()
			return
		}
		r.apply(ev)

		// Greedy drain: batch whatever is already queued so a burst
		// costs one publish instead of one per event.
	drain:
		for n := 1; n < maxApplyBatch; n++ {
			select {
			case next, ok := <-r.events:
				if !ok {
					r.publish()
					return
				}
				r.apply(next)
			default:
				break drain
			}
		}
		r.publish()
	}
}

// publish hands a fresh snapshot to readers if anything was applied
// since the last one. A batch of pure rejections or no-op ticks
// publishes nothing.
func (r *Reducer) publish() {
	if r.st.Revision == r.published {
		return
	}
	r.published = r.st.Revision
	r.pub.Publish(r.snapshot())
}

// snapshot copies the map headers; the records inside are immutable
// once a snapshot references them.
func (r *Reducer) snapshot() *Snapshot {
	tasks := make(map[intern.ID]*state.TaskRecord, len(r.st.Tasks))
	for id, t := range r.st.Tasks {
		tasks[id] = t
	}
	backends := make(map[intern.ID]*state.BackendRecord, len(r.st.Backends))
	for id, b := range r.st.Backends {
		backends[id] = b
	}
	return &Snapshot{
		Revision:      r.st.Revision,
		TakenAt:       r.clock.Now(),
		Paused:        r.st.Paused,
		Rejected:      r.st.Rejected,
		Filter:        r.st.Filter,
		BackendFilter: r.st.BackendFilter,
		Sort:          r.st.Sort,
		interner:      r.st.Interner,
		tasks:         tasks,
		backends:      backends,
	}
}

// apply dispatches one event. An applied event bumps the revision
// exactly once; a rejected event bumps the rejected counter instead
// and leaves the stores untouched.
func (r *Reducer) apply(ev Event) {
	switch e := ev.(type) {
	case TaskUpdated:
		r.applyTaskUpdated(e.Delta)
	case TaskRemoved:
		r.applyTaskRemoved(e.ID)
	case BackendUpdated:
		r.applyBackendUpdated(e.Delta)
	case BackendRemoved:
		r.applyBackendRemoved(e.ID)
	case UserCommand:
		r.applyCommand(e.Kind)
	case Tick:
		r.applyTick(e.At)
	default:
		r.reject("unknown event type %T", ev)
	}
}

func (r *Reducer) reject(format string, args ...interface{}) {
	r.st.Rejected++
	r.log.Warn("dropped event: "+format, args...)
}

func (r *Reducer) applyTaskUpdated(d TaskDelta) {
	if d.ID == "" {
		r.reject("task update without id")
		return
	}
	if d.Progress != nil && (math.IsNaN(*d.Progress) || math.IsInf(*d.Progress, 0)) {
		r.reject("task %q: progress is not a finite number", d.ID)
		return
	}

	id := r.st.Interner.Intern(d.ID)
	now := r.clock.Now()

	rec, ok := r.st.Tasks[id]
	if !ok {
		if d.Backend == "" {
			r.reject("unseen task %q has no backend", d.ID)
			return
		}
		status := state.StatusQueued
		if d.Status != nil {
			status = *d.Status
		}
		created := &state.TaskRecord{
			ID:        id,
			Name:      d.Name,
			Backend:   r.st.Interner.Intern(d.Backend),
			Status:    status,
			Samples:   state.NewSampleRing(r.ringCap),
			CreatedAt: now,
		}
		if created.Name == "" {
			created.Name = d.ID
		}
		r.applyTaskFields(created, d, now)
		r.st.Tasks[id] = created

		b := r.ensureBackend(created.Backend, d.Backend)
		b.TotalTasks++
		if created.Status.IsActive() {
			b.ActiveTasks++
		}
		r.st.Revision++
		return
	}

	// Existing record: validate the transition before touching anything,
	// so a rejected event leaves no partial effects.
	statusAfter := rec.Status
	if d.Status != nil {
		if !state.CanTransition(rec.Status, *d.Status) {
			r.reject("task %q: illegal transition %s -> %s", d.ID, rec.Status, *d.Status)
			return
		}
		statusAfter = *d.Status
	}

	next := rec.Clone()
	wasActive := rec.Status.IsActive()
	isActive := statusAfter.IsActive()
	next.Status = statusAfter

	bid := next.Backend
	if d.Backend != "" {
		bid = r.st.Interner.Intern(d.Backend)
	}
	if bid != next.Backend {
		// Reassignment moves the task's counts between backends.
		if old := r.mutableBackend(next.Backend); old != nil {
			old.TotalTasks--
			if wasActive {
				old.ActiveTasks--
			}
		}
		nb := r.ensureBackend(bid, d.Backend)
		nb.TotalTasks++
		if isActive {
			nb.ActiveTasks++
		}
		next.Backend = bid
	} else if wasActive != isActive {
		if b := r.mutableBackend(bid); b != nil {
			if isActive {
				b.ActiveTasks++
			} else {
				b.ActiveTasks--
			}
		}
	}

	r.applyTaskFields(next, d, now)
	r.st.Tasks[id] = next
	r.st.Revision++
}

// applyTaskFields copies the optional delta fields onto a record the
// caller already owns. Usage samples only accumulate while Running.
func (r *Reducer) applyTaskFields(rec *state.TaskRecord, d TaskDelta, now time.Time) {
	if d.Name != "" {
		rec.Name = d.Name
	}
	if d.Progress != nil {
		p := *d.Progress
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		rec.Progress = p
	}
	if d.Err != "" {
		rec.Err = d.Err
	}
	if d.Usage != nil && rec.Status == state.StatusRunning {
		rec.Samples.Push(*d.Usage)
	}
	rec.UpdatedAt = now
}

func (r *Reducer) applyTaskRemoved(id string) {
	if id == "" {
		r.reject("task removal without id")
		return
	}
	tid := r.st.Interner.Intern(id)
	rec, ok := r.st.Tasks[tid]
	if !ok {
		r.reject("removal of unknown task %q", id)
		return
	}
	if b := r.mutableBackend(rec.Backend); b != nil {
		b.TotalTasks--
		if rec.Status.IsActive() {
			b.ActiveTasks--
		}
	}
	delete(r.st.Tasks, tid)
	r.st.Revision++
}

func (r *Reducer) applyBackendUpdated(d BackendDelta) {
	if d.ID == "" {
		r.reject("backend update without id")
		return
	}
	id := r.st.Interner.Intern(d.ID)

	var next *state.BackendRecord
	if cur, ok := r.st.Backends[id]; ok {
		next = cur.Clone()
		r.st.Backends[id] = next
		if d.Name != "" {
			next.Name = d.Name
		}
		if d.Kind != state.KindGeneric {
			next.Kind = d.Kind
		}
	} else {
		next = &state.BackendRecord{
			ID:          id,
			Name:        d.Name,
			Kind:        d.Kind,
			Utilization: state.NewSampleRing(r.ringCap),
		}
		if next.Name == "" {
			next.Name = d.ID
		}
		r.st.Backends[id] = next
	}

	if d.Health != state.HealthUnknown {
		next.Health = d.Health
	}
	if d.Utilization != nil {
		next.Utilization.Push(*d.Utilization)
	}
	if !d.SeenAt.IsZero() {
		next.LastSeen = d.SeenAt
	}
	r.st.Revision++
}

func (r *Reducer) applyBackendRemoved(id string) {
	if id == "" {
		r.reject("backend removal without id")
		return
	}
	bid := r.st.Interner.Intern(id)
	b, ok := r.st.Backends[bid]
	if !ok {
		r.reject("removal of unknown backend %q", id)
		return
	}
	if b.ActiveTasks > 0 {
		r.reject("backend %q still has %d active tasks", id, b.ActiveTasks)
		return
	}
	delete(r.st.Backends, bid)
	r.st.Revision++
}

func (r *Reducer) applyCommand(kind CommandKind) {
	switch kind {
	case CmdTogglePause:
		r.st.Paused = !r.st.Paused
	case CmdCycleSort:
		r.st.Sort = r.st.Sort.Next()
	case CmdCycleStatusFilter:
		r.st.Filter = r.st.Filter.Next()
	case CmdCycleBackendFilter:
		r.st.BackendFilter = r.nextBackendFilter()
	case CmdResetFilters:
		r.st.Filter = state.FilterAll
		r.st.BackendFilter = intern.None
	default:
		r.reject("unknown user command %d", kind)
		return
	}
	r.st.Revision++
}

// nextBackendFilter steps None -> each backend in name order -> None.
func (r *Reducer) nextBackendFilter() intern.ID {
	if len(r.st.Backends) == 0 {
		return intern.None
	}
	ids := make([]intern.ID, 0, len(r.st.Backends))
	for id := range r.st.Backends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.st.Backends[ids[i]].Name < r.st.Backends[ids[j]].Name
	})

	cur := r.st.BackendFilter
	if cur == intern.None {
		return ids[0]
	}
	for i, id := range ids {
		if id == cur {
			if i+1 < len(ids) {
				return ids[i+1]
			}
			return intern.None
		}
	}
	// The filtered backend disappeared; restart the cycle.
	return ids[0]
}

// applyTick sweeps terminal tasks older than the retention window out
// of the store. A tick that evicts nothing is a no-op: no revision
// bump, no publish, so the render side skips the redraw.
func (r *Reducer) applyTick(at time.Time) {
	if r.retention <= 0 {
		return
	}
	cutoff := at.Add(-r.retention)
	evicted := 0
	for id, rec := range r.st.Tasks {
		if !rec.Status.IsTerminal() || rec.UpdatedAt.After(cutoff) {
			continue
		}
		if b := r.mutableBackend(rec.Backend); b != nil {
			b.TotalTasks--
		}
		delete(r.st.Tasks, id)
		evicted++
	}
	if evicted > 0 {
		r.log.Debug("retention sweep evicted %d terminal tasks", evicted)
		r.st.Revision++
	}
}

// mutableBackend clones the backend record into the store and returns
// it for in-place mutation, or nil when the id is unknown.
func (r *Reducer) mutableBackend(id intern.ID) *state.BackendRecord {
	b, ok := r.st.Backends[id]
	if !ok {
		return nil
	}
	next := b.Clone()
	r.st.Backends[id] = next
	return next
}

// ensureBackend returns a mutable record for the backend, creating an
// unknown-health placeholder when a task arrives before its backend's
// first report.
func (r *Reducer) ensureBackend(id intern.ID, name string) *state.BackendRecord {
	if b := r.mutableBackend(id); b != nil {
		return b
	}
	b := &state.BackendRecord{
		ID:          id,
		Name:        name,
		Kind:        state.KindGeneric,
		Health:      state.HealthUnknown,
		Utilization: state.NewSampleRing(r.ringCap),
	}
	r.st.Backends[id] = b
	return b
}
