package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/state"
)

// LocalSource watches processes on this machine whose name or command
// line contains one of the configured patterns. A visible process is a
// Running task; when it exits it simply disappears from the report, so
// local tasks end by removal rather than a terminal status.
type LocalSource struct {
	name     string
	patterns []string
}

func NewLocalSource(name string, patterns []string) *LocalSource {
	return &LocalSource{name: name, patterns: patterns}
}

func (s *LocalSource) Name() string            { return s.name }
func (s *LocalSource) Kind() state.BackendKind { return state.KindLocal }

func (s *LocalSource) Poll(ctx context.Context) (*Report, error) {
	report := &Report{Backend: BackendState{Health: state.HealthHealthy}}

	// Host utilization headlines the backend card even when no
	// patterns are configured.
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			report.Backend.CPU = pct[0]
			report.Backend.Memory = float64(vm.Used)
			report.Backend.HasUsage = true
		}
	}
	if len(s.patterns) == 0 {
		return report, nil
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource, "process listing failed", "")
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Raced with process exit.
			continue
		}
		if !s.matches(ctx, p, name) {
			continue
		}
		t := TaskState{
			ID:     taskIDForPID(int(p.Pid)),
			Name:   name,
			Status: state.StatusRunning,
		}
		if cpuPct, err := p.CPUPercentWithContext(ctx); err == nil {
			if info, err := p.MemoryInfoWithContext(ctx); err == nil {
				t.CPU = cpuPct
				t.Memory = float64(info.RSS)
				t.HasUsage = true
			}
		}
		report.Tasks = append(report.Tasks, t)
	}
	return report, nil
}

func taskIDForPID(pid int) string {
	return fmt.Sprintf("pid-%d", pid)
}

func (s *LocalSource) matches(ctx context.Context, p *process.Process, name string) bool {
	for _, pat := range s.patterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	cmdline, err := p.CmdlineWithContext(ctx)
	if err != nil {
		return false
	}
	for _, pat := range s.patterns {
		if pat != "" && strings.Contains(cmdline, pat) {
			return true
		}
	}
	return false
}
