package monitor

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/state"
)

// demoNames are the pipeline stages the demo workload cycles through.
var demoNames = []string{
	"fastqc",
	"bwa-mem-align",
	"sort-bam",
	"mark-duplicates",
	"variant-call",
	"annotate-vcf",
	"salmon-quant",
	"multiqc-report",
}

var demoFailures = []string{
	"exit status 1",
	"out of memory",
	"executor timed out",
}

// DemoOptions tunes the synthetic workload.
type DemoOptions struct {
	// Seed makes the simulation reproducible. Zero picks a fixed
	// default so `taskdeck dash --demo` looks the same everywhere.
	Seed int64

	// MaxActive caps how many tasks run or queue at once.
	MaxActive int

	// FailRatio is the chance a finishing task fails instead of
	// completing.
	FailRatio float64

	// FailEvery makes every nth poll return an error, to demo the
	// degraded and unreachable health states. Zero disables it.
	FailEvery int
}

// DemoSource simulates a busy bioinformatics pipeline. Tasks spawn,
// queue briefly, run with drifting usage, finish or fail, linger a few
// polls, and vanish. No external backend needed.
type DemoSource struct {
	name  string
	opts  DemoOptions
	rng   *rand.Rand
	tasks []*demoTask
	polls int
}

type demoTask struct {
	id       string
	name     string
	status   state.TaskStatus
	progress float64
	speed    float64
	cpu      float64
	mem      float64
	err      string
	queued   int
	linger   int
}

// NewDemoSource builds the simulator. The name becomes the backend id
// on the dashboard.
func NewDemoSource(name string, opts DemoOptions) *DemoSource {
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if opts.MaxActive <= 0 {
		opts.MaxActive = 6
	}
	if opts.FailRatio <= 0 {
		opts.FailRatio = 0.12
	}
	return &DemoSource{
		name: name,
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
}

func (s *DemoSource) Name() string            { return s.name }
func (s *DemoSource) Kind() state.BackendKind { return state.KindGeneric }

// Poll advances the simulation one step and reports the result.
func (s *DemoSource) Poll(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.polls++
	if s.opts.FailEvery > 0 && s.polls%s.opts.FailEvery == 0 {
		return nil, fmt.Errorf("simulated outage on poll %d", s.polls)
	}

	s.spawn()
	s.advance()

	report := &Report{Backend: BackendState{Health: state.HealthHealthy}}
	var busyCPU, busyMem float64
	for _, t := range s.tasks {
		ts := TaskState{
			ID:       t.id,
			Name:     t.name,
			Status:   t.status,
			Progress: t.progress,
			Err:      t.err,
		}
		if t.status == state.StatusRunning {
			ts.CPU = t.cpu
			ts.Memory = t.mem
			ts.HasUsage = true
			busyCPU += t.cpu
			busyMem += t.mem
		}
		report.Tasks = append(report.Tasks, ts)
	}
	if busyCPU > 100 {
		busyCPU = 100
	}
	report.Backend.CPU = busyCPU
	report.Backend.Memory = busyMem
	report.Backend.HasUsage = true
	return report, nil
}

func (s *DemoSource) spawn() {
	active := 0
	for _, t := range s.tasks {
		if t.status.IsActive() {
			active++
		}
	}
	for active < s.opts.MaxActive {
		if active > 0 && s.rng.Float64() > 0.5 {
			break
		}
		base := demoNames[s.rng.Intn(len(demoNames))]
		// Drawing the uuid from the seeded rng keeps runs with the
		// same seed identical.
		id, _ := uuid.NewRandomFromReader(s.rng)
		s.tasks = append(s.tasks, &demoTask{
			id:     fmt.Sprintf("%s-%s", base, id.String()[:8]),
			name:   base,
			status: state.StatusQueued,
			speed:  0.05 + s.rng.Float64()*0.15,
			queued: 1 + s.rng.Intn(3),
		})
		active++
	}
}

func (s *DemoSource) advance() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		switch t.status {
		case state.StatusQueued:
			t.queued--
			if t.queued <= 0 {
				t.status = state.StatusRunning
				t.cpu = 20 + s.rng.Float64()*60
				t.mem = (0.2 + s.rng.Float64()*1.8) * (1 << 30)
			}
		case state.StatusRunning:
			t.progress += t.speed * (0.5 + s.rng.Float64())
			t.cpu = drift(s.rng, t.cpu, 5, 100)
			t.mem = drift(s.rng, t.mem, float64(64<<20), float64(4<<30))
			if t.progress >= 1 {
				t.progress = 1
				t.linger = 3 + s.rng.Intn(5)
				if s.rng.Float64() < s.opts.FailRatio {
					t.status = state.StatusFailed
					t.err = demoFailures[s.rng.Intn(len(demoFailures))]
				} else {
					t.status = state.StatusCompleted
				}
			}
		default:
			t.linger--
			if t.linger <= 0 {
				continue
			}
		}
		kept = append(kept, t)
	}
	s.tasks = kept
}

// drift nudges a reading by up to ±10%, clamped to [floor, ceil].
func drift(rng *rand.Rand, v, floor, ceil float64) float64 {
	v *= 1 + (rng.Float64()-0.5)*0.2
	if v < floor {
		return floor
	}
	if v > ceil {
		return ceil
	}
	return v
}
