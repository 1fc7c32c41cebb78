package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusString(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   string
	}{
		{StatusQueued, "Queued"},
		{StatusRunning, "Running"},
		{StatusCompleted, "Completed"},
		{StatusFailed, "Failed"},
		{StatusCancelled, "Cancelled"},
		{TaskStatus(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusQueued.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestTaskStatusIsActive(t *testing.T) {
	assert.True(t, StatusQueued.IsActive())
	assert.True(t, StatusRunning.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusFailed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from TaskStatus
		to   TaskStatus
		want bool
	}{
		{"queued to running", StatusQueued, StatusRunning, true},
		{"queued to cancelled", StatusQueued, StatusCancelled, true},
		{"running to completed", StatusRunning, StatusCompleted, true},
		{"running to failed", StatusRunning, StatusFailed, true},
		{"running to cancelled", StatusRunning, StatusCancelled, true},

		{"queued to completed skips running", StatusQueued, StatusCompleted, false},
		{"queued to failed skips running", StatusQueued, StatusFailed, false},
		{"running back to queued", StatusRunning, StatusQueued, false},
		{"completed to running", StatusCompleted, StatusRunning, false},
		{"completed to queued", StatusCompleted, StatusQueued, false},
		{"failed to running", StatusFailed, StatusRunning, false},
		{"cancelled to running", StatusCancelled, StatusRunning, false},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},

		{"queued refresh", StatusQueued, StatusQueued, true},
		{"running refresh", StatusRunning, StatusRunning, true},
		{"completed refresh", StatusCompleted, StatusCompleted, true},
		{"failed refresh", StatusFailed, StatusFailed, true},
		{"cancelled refresh", StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTaskRecordClone(t *testing.T) {
	ring := NewSampleRing(10)
	rec := &TaskRecord{
		Name:      "bwa-mem-align",
		Status:    StatusRunning,
		Progress:  0.4,
		Samples:   ring,
		CreatedAt: time.Now(),
	}

	c := rec.Clone()
	c.Status = StatusCompleted
	c.Progress = 1.0

	// The original is untouched; the ring handle is shared.
	assert.Equal(t, StatusRunning, rec.Status)
	assert.Equal(t, 0.4, rec.Progress)
	assert.Same(t, rec.Samples, c.Samples)
}

func TestNewAppState(t *testing.T) {
	s := NewAppState()

	assert.NotNil(t, s.Interner)
	assert.NotNil(t, s.Tasks)
	assert.NotNil(t, s.Backends)
	assert.Zero(t, s.Revision)
	assert.Zero(t, s.Rejected)
	assert.False(t, s.Paused)
	assert.Equal(t, FilterAll, s.Filter)
	assert.Equal(t, SortByUpdated, s.Sort)
}
