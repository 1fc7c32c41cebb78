package monitor

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/taskdeck/taskdeck/internal/engine"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/state"
)

// Options tunes a monitor loop. Zero values fall back to defaults that
// suit an interactive dashboard.
type Options struct {
	// Interval between polls.
	Interval time.Duration

	// Timeout bounds a single poll, sends included.
	Timeout time.Duration

	// SendBudget bounds how long one event may wait on a saturated
	// bus before it is dropped and retried next poll.
	SendBudget time.Duration

	// FailureThreshold is how many consecutive poll failures demote
	// the backend from Degraded to Unreachable.
	FailureThreshold int

	Clock  clockwork.Clock
	Logger logger.Logger
}

// Monitor drives one Source on a polling loop and feeds the engine's
// bus. It implements engine.Runner.
type Monitor struct {
	src  Source
	bus  *engine.Bus
	opts Options

	clock clockwork.Clock
	log   logger.Logger

	// last holds the previous report keyed by task id; only diffs
	// against it become events. Touched solely by the Run goroutine.
	last  map[string]TaskState
	fails int
}

// New wraps a source in a monitor loop attached to the given bus.
func New(src Source, bus *engine.Bus, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.SendBudget <= 0 {
		opts.SendBudget = time.Second
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 3
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return &Monitor{
		src:   src,
		bus:   bus,
		opts:  opts,
		clock: opts.Clock,
		log:   opts.Logger,
		last:  make(map[string]TaskState),
	}
}

// Run polls until ctx is cancelled. Cancellation is only observed
// between polls so an in-flight poll always lands completely.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info("monitor %s started: interval=%s timeout=%s",
		m.src.Name(), m.opts.Interval, m.opts.Timeout)

	m.pollOnce()

	ticker := m.clock.NewTicker(m.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("monitor %s stopped", m.src.Name())
			return
		case <-ticker.Chan():
			m.pollOnce()
		}
	}
}

// pollOnce runs one poll cycle against its own timeout context,
// deliberately detached from the run context.
func (m *Monitor) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.Timeout)
	defer cancel()

	report, err := m.src.Poll(ctx)
	now := m.clock.Now()
	if err != nil {
		m.reportFailure(err)
		return
	}

	m.fails = 0
	m.reportBackend(report.Backend, now)
	m.reportTasks(report.Tasks, now)
}

// reportFailure marks the backend Degraded, or Unreachable once the
// failure streak passes the threshold. No SeenAt: a failed contact
// must not refresh the backend's last-seen time. Task state is left
// alone; the backend going dark says nothing about its tasks.
func (m *Monitor) reportFailure(err error) {
	m.fails++
	health := state.HealthDegraded
	if m.fails >= m.opts.FailureThreshold {
		health = state.HealthUnreachable
	}
	m.log.Warn("monitor %s: poll failed (%d consecutive): %v", m.src.Name(), m.fails, err)

	m.send(engine.BackendUpdated{Delta: engine.BackendDelta{
		ID:     m.src.Name(),
		Kind:   m.src.Kind(),
		Health: health,
	}})
}

func (m *Monitor) reportBackend(b BackendState, now time.Time) {
	health := b.Health
	if health == state.HealthUnknown {
		health = state.HealthHealthy
	}
	delta := engine.BackendDelta{
		ID:     m.src.Name(),
		Name:   m.src.Name(),
		Kind:   m.src.Kind(),
		Health: health,
		SeenAt: now,
	}
	if b.HasUsage {
		delta.Utilization = &state.Sample{At: now, CPU: b.CPU, Memory: b.Memory}
	}
	m.send(engine.BackendUpdated{Delta: delta})
}

// reportTasks diffs the report against the previous poll and emits one
// event per changed task plus a removal per vanished task. A send that
// exhausts its budget leaves the diff entry untouched, so the change
// is retried on the next cycle.
func (m *Monitor) reportTasks(tasks []TaskState, now time.Time) {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = struct{}{}
		if prev, ok := m.last[t.ID]; ok && prev == t {
			continue
		}

		delta := engine.TaskDelta{
			ID:       t.ID,
			Name:     t.Name,
			Backend:  m.src.Name(),
			Status:   engine.StatusOf(t.Status),
			Progress: engine.ProgressOf(t.Progress),
			Err:      t.Err,
		}
		if t.HasUsage && t.Status == state.StatusRunning {
			delta.Usage = &state.Sample{At: now, CPU: t.CPU, Memory: t.Memory}
		}
		if m.send(engine.TaskUpdated{Delta: delta}) {
			m.last[t.ID] = t
		}
	}

	for id := range m.last {
		if _, ok := seen[id]; ok {
			continue
		}
		if m.send(engine.TaskRemoved{ID: id}) {
			delete(m.last, id)
		}
	}
}

func (m *Monitor) send(ev engine.Event) bool {
	if err := m.bus.SendBudget(context.Background(), ev, m.opts.SendBudget); err != nil {
		m.log.Warn("monitor %s: event dropped: %v", m.src.Name(), err)
		return false
	}
	return true
}
