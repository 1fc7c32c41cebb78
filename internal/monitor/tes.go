package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	back "github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/state"
)

// tesRetryBudget bounds the in-poll retries for one task listing.
// Persistent failures are the monitor's job to account for, not ours.
const tesRetryBudget = 5 * time.Second

// TESSource watches a GA4GH Task Execution Service. The base URL is
// the service root, e.g. http://localhost:8000 for a local Funnel;
// basic-auth credentials may be embedded in the URL.
type TESSource struct {
	name    string
	baseURL string
	client  *http.Client
}

func NewTESSource(name, baseURL string) *TESSource {
	return &TESSource{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  cleanhttp.DefaultClient(),
	}
}

func (s *TESSource) Name() string            { return s.name }
func (s *TESSource) Kind() state.BackendKind { return state.KindTES }

// Poll lists the service's tasks in BASIC view. Transient transport
// hiccups are retried inside the poll with exponential backoff so a
// single dropped packet does not demote the backend's health.
func (s *TESSource) Poll(ctx context.Context) (*Report, error) {
	var listing tesListTasksResponse
	bf := back.NewExponentialBackOff()
	bf.InitialInterval = 200 * time.Millisecond
	bf.MaxInterval = time.Second
	bf.MaxElapsedTime = tesRetryBudget
	err := back.Retry(func() error {
		return s.listTasks(ctx, &listing)
	}, back.WithContext(bf, ctx))
	if err != nil {
		return nil, err
	}

	report := &Report{Backend: BackendState{Health: state.HealthHealthy}}
	for _, t := range listing.Tasks {
		report.Tasks = append(report.Tasks, tesTaskState(t))
	}
	return report, nil
}

func (s *TESSource) listTasks(ctx context.Context, out *tesListTasksResponse) error {
	url := s.baseURL + "/v1/tasks?view=BASIC&page_size=256"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return back.Permanent(err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		herr := errors.New(errors.ErrSource,
			fmt.Sprintf("tes service returned %s", resp.Status), "")
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client errors will not heal on retry.
			return back.Permanent(herr)
		}
		return herr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return back.Permanent(errors.WrapWithCode(err, errors.ErrEvent,
			"tes task listing is not valid json", ""))
	}
	return nil
}

// tesTask is the slice of the TES task document the dashboard needs.
type tesTask struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

type tesListTasksResponse struct {
	Tasks         []tesTask `json:"tasks"`
	NextPageToken string    `json:"next_page_token"`
}

func tesTaskState(t tesTask) TaskState {
	ts := TaskState{ID: t.ID, Name: t.Name}
	if ts.Name == "" {
		ts.Name = t.ID
	}
	switch t.State {
	case "QUEUED":
		ts.Status = state.StatusQueued
	case "INITIALIZING", "RUNNING", "PAUSED":
		ts.Status = state.StatusRunning
	case "COMPLETE":
		ts.Status = state.StatusCompleted
		ts.Progress = 1
	case "EXECUTOR_ERROR":
		ts.Status = state.StatusFailed
		ts.Err = "executor error"
	case "SYSTEM_ERROR":
		ts.Status = state.StatusFailed
		ts.Err = "system error"
	case "PREEMPTED":
		ts.Status = state.StatusFailed
		ts.Err = "preempted"
	case "CANCELED", "CANCELING":
		ts.Status = state.StatusCancelled
	default: // UNKNOWN
		ts.Status = state.StatusQueued
	}
	return ts
}
