package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/state"
)

func TestTESSourcePoll(t *testing.T) {
	var gotPath, gotView string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotView = r.URL.Query().Get("view")
		json.NewEncoder(w).Encode(tesListTasksResponse{Tasks: []tesTask{
			{ID: "task-1", Name: "bwa-mem", State: "RUNNING"},
			{ID: "task-2", Name: "variant-call", State: "COMPLETE"},
			{ID: "task-3", State: "EXECUTOR_ERROR"},
		}})
	}))
	defer srv.Close()

	src := NewTESSource("tes", srv.URL+"/")
	report, err := src.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/v1/tasks", gotPath)
	assert.Equal(t, "BASIC", gotView)
	assert.Equal(t, state.HealthHealthy, report.Backend.Health)
	require.Len(t, report.Tasks, 3)

	assert.Equal(t, state.StatusRunning, report.Tasks[0].Status)
	assert.Equal(t, "bwa-mem", report.Tasks[0].Name)

	assert.Equal(t, state.StatusCompleted, report.Tasks[1].Status)
	assert.Equal(t, 1.0, report.Tasks[1].Progress)

	assert.Equal(t, state.StatusFailed, report.Tasks[2].Status)
	assert.Equal(t, "executor error", report.Tasks[2].Err)
	assert.Equal(t, "task-3", report.Tasks[2].Name, "unnamed tasks fall back to the id")
}

func TestTESSourceClientErrorIsPermanent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "no such route", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewTESSource("tes", srv.URL)
	_, err := src.Poll(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
	assert.Equal(t, 1, calls, "4xx responses must not be retried")
}

func TestTESSourceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	src := NewTESSource("tes", srv.URL)
	_, err := src.Poll(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrEvent))
}

func TestTESSourceRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "warming up", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(tesListTasksResponse{})
	}))
	defer srv.Close()

	src := NewTESSource("tes", srv.URL)
	report, err := src.Poll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Empty(t, report.Tasks)
}

func TestTESTaskStateMapping(t *testing.T) {
	tests := []struct {
		tesState string
		want     state.TaskStatus
	}{
		{"QUEUED", state.StatusQueued},
		{"INITIALIZING", state.StatusRunning},
		{"RUNNING", state.StatusRunning},
		{"PAUSED", state.StatusRunning},
		{"COMPLETE", state.StatusCompleted},
		{"EXECUTOR_ERROR", state.StatusFailed},
		{"SYSTEM_ERROR", state.StatusFailed},
		{"PREEMPTED", state.StatusFailed},
		{"CANCELED", state.StatusCancelled},
		{"CANCELING", state.StatusCancelled},
		{"UNKNOWN", state.StatusQueued},
	}

	for _, tt := range tests {
		t.Run(tt.tesState, func(t *testing.T) {
			got := tesTaskState(tesTask{ID: "x", State: tt.tesState})
			assert.Equal(t, tt.want, got.Status)
		})
	}
}
