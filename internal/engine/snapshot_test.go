package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/intern"
	"github.com/taskdeck/taskdeck/internal/state"
)

type snapFixture struct {
	snap *Snapshot
	base time.Time
}

func newSnapFixture() *snapFixture {
	st := state.NewAppState()
	return &snapFixture{
		snap: emptySnapshot(st, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)),
		base: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
}

func (f *snapFixture) addTask(name, backend string, status state.TaskStatus, progress float64, age time.Duration) {
	id := f.snap.interner.Intern(name)
	f.snap.tasks[id] = &state.TaskRecord{
		ID:        id,
		Name:      name,
		Backend:   f.snap.interner.Intern(backend),
		Status:    status,
		Progress:  progress,
		Samples:   state.NewSampleRing(4),
		UpdatedAt: f.base.Add(-age),
	}
}

func (f *snapFixture) addBackend(name string, active, total int) {
	id := f.snap.interner.Intern(name)
	f.snap.backends[id] = &state.BackendRecord{
		ID:          id,
		Name:        name,
		ActiveTasks: active,
		TotalTasks:  total,
		Utilization: state.NewSampleRing(4),
	}
}

func names(ts []*state.TaskRecord) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestSnapshotTasksStatusFilter(t *testing.T) {
	f := newSnapFixture()
	f.addTask("align", "b1", state.StatusRunning, 0.5, time.Second)
	f.addTask("sort", "b1", state.StatusQueued, 0, 2*time.Second)
	f.addTask("index", "b1", state.StatusCompleted, 1, 3*time.Second)

	f.snap.Filter = state.FilterRunning
	assert.Equal(t, []string{"align"}, names(f.snap.Tasks()))

	f.snap.Filter = state.FilterAll
	assert.Len(t, f.snap.Tasks(), 3)
}

func TestSnapshotTasksBackendFilter(t *testing.T) {
	f := newSnapFixture()
	f.addTask("align", "docker", state.StatusRunning, 0.5, time.Second)
	f.addTask("sort", "tes", state.StatusRunning, 0.2, 2*time.Second)

	f.snap.BackendFilter = f.snap.interner.Intern("tes")
	got := f.snap.Tasks()
	require.Len(t, got, 1)
	assert.Equal(t, "sort", got[0].Name)

	// Both filters combine.
	f.snap.Filter = state.FilterCompleted
	assert.Empty(t, f.snap.Tasks())
}

func TestSnapshotSortOrders(t *testing.T) {
	tests := []struct {
		name string
		sort state.SortOrder
		want []string
	}{
		{"updated newest first", state.SortByUpdated, []string{"charlie", "alpha", "bravo"}},
		{"name ascending", state.SortByName, []string{"alpha", "bravo", "charlie"}},
		{"status groups then name", state.SortByStatus, []string{"bravo", "alpha", "charlie"}},
		{"progress descending", state.SortByProgress, []string{"alpha", "charlie", "bravo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSnapFixture()
			f.addTask("alpha", "b1", state.StatusRunning, 0.9, 5*time.Second)
			f.addTask("bravo", "b1", state.StatusQueued, 0.1, 10*time.Second)
			f.addTask("charlie", "b1", state.StatusRunning, 0.5, time.Second)

			f.snap.Sort = tt.sort
			assert.Equal(t, tt.want, names(f.snap.Tasks()))
		})
	}
}

func TestSnapshotAllTasksIgnoresFilters(t *testing.T) {
	f := newSnapFixture()
	f.addTask("zeta", "b1", state.StatusCompleted, 1, time.Second)
	f.addTask("alpha", "b1", state.StatusRunning, 0.5, 2*time.Second)
	f.snap.Filter = state.FilterFailed
	f.snap.Sort = state.SortByProgress

	assert.Equal(t, []string{"alpha", "zeta"}, names(f.snap.AllTasks()))
}

func TestSnapshotBackendsSorted(t *testing.T) {
	f := newSnapFixture()
	f.addBackend("tes-cluster", 2, 5)
	f.addBackend("docker-local", 1, 3)
	f.addBackend("local", 0, 0)

	bs := f.snap.Backends()
	require.Len(t, bs, 3)
	assert.Equal(t, "docker-local", bs[0].Name)
	assert.Equal(t, "local", bs[1].Name)
	assert.Equal(t, "tes-cluster", bs[2].Name)
}

func TestSnapshotStatusCounts(t *testing.T) {
	f := newSnapFixture()
	f.addTask("a", "b1", state.StatusRunning, 0.5, time.Second)
	f.addTask("b", "b1", state.StatusRunning, 0.2, time.Second)
	f.addTask("c", "b1", state.StatusFailed, 0.8, time.Second)

	counts := f.snap.StatusCounts()
	assert.Equal(t, 2, counts[state.StatusRunning])
	assert.Equal(t, 1, counts[state.StatusFailed])
	assert.Equal(t, 0, counts[state.StatusQueued])
}

func TestSnapshotActiveTasks(t *testing.T) {
	f := newSnapFixture()
	f.addBackend("docker", 2, 4)
	f.addBackend("tes", 3, 3)

	assert.Equal(t, 5, f.snap.ActiveTasks())
}

func TestSnapshotLookups(t *testing.T) {
	f := newSnapFixture()
	f.addTask("align", "docker", state.StatusRunning, 0.5, time.Second)
	f.addBackend("docker", 1, 1)

	taskID := f.snap.interner.Intern("align")
	backendID := f.snap.interner.Intern("docker")

	task, ok := f.snap.Task(taskID)
	require.True(t, ok)
	assert.Equal(t, "align", task.Name)
	assert.Equal(t, "align", f.snap.Resolve(taskID))

	backend, ok := f.snap.Backend(backendID)
	require.True(t, ok)
	assert.Equal(t, "docker", backend.Name)

	_, ok = f.snap.Task(intern.ID(9999))
	assert.False(t, ok)

	assert.Equal(t, 1, f.snap.TaskCount())
	assert.Equal(t, 1, f.snap.BackendCount())
}

func TestPublisherHandoff(t *testing.T) {
	st := state.NewAppState()
	first := emptySnapshot(st, time.Now())
	p := NewPublisher(first)

	// No publish in between: the identical pointer comes back.
	assert.Same(t, first, p.Current())
	assert.Same(t, p.Current(), p.Current())

	second := emptySnapshot(st, time.Now())
	second.Revision = 1
	p.Publish(second)
	assert.Same(t, second, p.Current())
}

func TestPublisherPauseFreeze(t *testing.T) {
	st := state.NewAppState()
	p := NewPublisher(emptySnapshot(st, time.Now()))

	pausePoint := emptySnapshot(st, time.Now())
	pausePoint.Revision = 1
	pausePoint.Paused = true
	p.Publish(pausePoint)

	// The snapshot that enters the pause publishes, then the view
	// freezes.
	assert.Same(t, pausePoint, p.Current())
	assert.False(t, p.Pending())

	parked := emptySnapshot(st, time.Now())
	parked.Revision = 2
	parked.Paused = true
	p.Publish(parked)
	assert.Same(t, pausePoint, p.Current())
	assert.True(t, p.Pending())

	// Resume swaps in immediately and clears the parked snapshot.
	resumed := emptySnapshot(st, time.Now())
	resumed.Revision = 3
	p.Publish(resumed)
	assert.Same(t, resumed, p.Current())
	assert.False(t, p.Pending())
}

func TestPublisherResumeWithoutPending(t *testing.T) {
	st := state.NewAppState()
	p := NewPublisher(emptySnapshot(st, time.Now()))

	paused := emptySnapshot(st, time.Now())
	paused.Paused = true
	p.Publish(paused)

	resumed := emptySnapshot(st, time.Now())
	resumed.Revision = 1
	p.Publish(resumed)

	assert.Same(t, resumed, p.Current())
	assert.False(t, p.Pending())
}
