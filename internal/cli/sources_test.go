package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/monitor"
	"github.com/taskdeck/taskdeck/internal/state"
)

// fakeSource is a scriptable monitor.Source for probe tests.
type fakeSource struct {
	name   string
	kind   state.BackendKind
	report *monitor.Report
	err    error
}

func (s *fakeSource) Name() string            { return s.name }
func (s *fakeSource) Kind() state.BackendKind { return s.kind }
func (s *fakeSource) Poll(ctx context.Context) (*monitor.Report, error) {
	return s.report, s.err
}

func TestProbeAllMixedResults(t *testing.T) {
	sources := []monitor.Source{
		&fakeSource{
			name: "cluster",
			kind: state.KindTES,
			report: &monitor.Report{
				Tasks: []monitor.TaskState{
					{ID: "t1", Name: "align", Status: state.StatusRunning},
					{ID: "t2", Name: "sort", Status: state.StatusQueued},
					{ID: "t3", Name: "index", Status: state.StatusCompleted},
				},
			},
		},
		&fakeSource{
			name: "box",
			kind: state.KindDocker,
			err:  errors.New(errors.ErrSource, "connection refused", ""),
		},
	}

	results := probeAll(sources, time.Second)
	require.Len(t, results, 2)

	assert.True(t, results[0].OK)
	assert.Equal(t, "cluster", results[0].Name)
	assert.Equal(t, "tes", results[0].Kind)
	assert.Equal(t, "Healthy", results[0].Health, "unknown health defaults to healthy on success")
	assert.Equal(t, 3, results[0].Tasks)
	assert.Empty(t, results[0].Error)

	assert.False(t, results[1].OK)
	assert.Equal(t, "box", results[1].Name)
	assert.Equal(t, "docker", results[1].Kind)
	assert.Contains(t, results[1].Error, "connection refused")
	assert.Zero(t, results[1].Tasks)
}

func TestProbeOneKeepsReportedHealth(t *testing.T) {
	src := &fakeSource{
		name: "shaky",
		kind: state.KindLocal,
		report: &monitor.Report{
			Backend: monitor.BackendState{Health: state.HealthDegraded},
		},
	}

	res := probeOne(src, time.Second)
	assert.True(t, res.OK)
	assert.Equal(t, "Degraded", res.Health)
}

func TestOutputSourcesJSON(t *testing.T) {
	results := []probeResult{
		{Name: "demo", Kind: "generic", OK: true, Health: "Healthy", Tasks: 5, ElapsedMS: 2},
		{Name: "cluster", Kind: "tes", Error: "connection refused"},
	}

	var buf bytes.Buffer
	require.NoError(t, outputSourcesJSON(&buf, results))

	var out SourcesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Sources, 2)
	assert.Equal(t, "demo", out.Sources[0].Name)
	assert.Equal(t, 5, out.Sources[0].Tasks)
	assert.Equal(t, "connection refused", out.Sources[1].Error)

	assert.Equal(t, 1, out.Summary.Reachable)
	assert.Equal(t, 1, out.Summary.Failed)
	assert.False(t, out.Summary.AllClear)

	// Stable wire names
	raw := buf.String()
	assert.Contains(t, raw, `"elapsed_ms"`)
	assert.Contains(t, raw, `"all_clear"`)
}

func TestOutputSourcesJSONAllClear(t *testing.T) {
	results := []probeResult{
		{Name: "demo", Kind: "generic", OK: true, Health: "Healthy"},
	}

	var buf bytes.Buffer
	require.NoError(t, outputSourcesJSON(&buf, results))

	var out SourcesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.True(t, out.Summary.AllClear)
	assert.Zero(t, out.Summary.Failed)
}
