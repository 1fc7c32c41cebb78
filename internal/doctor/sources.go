package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/monitor"
	"github.com/taskdeck/taskdeck/internal/state"
)

// DefaultProbeTimeout bounds a single source probe.
const DefaultProbeTimeout = 5 * time.Second

// SourceCheck builds one configured source and polls it once.
type SourceCheck struct {
	Source  config.SourceConfig
	Timeout time.Duration
}

func (c *SourceCheck) Name() string     { return fmt.Sprintf("source_%s", c.Source.Name) }
func (c *SourceCheck) Category() string { return "SOURCES" }

func (c *SourceCheck) Run() CheckResult {
	src, err := monitor.NewSource(c.Source, 0)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Source.Name, err),
			Suggestion: fmt.Sprintf("Check sources entry '%s' in your .taskdeck.yaml", c.Source.Name),
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	report, err := src.Poll(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Source.Name, err),
			Suggestion: probeSuggestion(c.Source),
		}
	}

	if report.Backend.Health == state.HealthDegraded || report.Backend.Health == state.HealthUnreachable {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s: reachable but %s", c.Source.Name, report.Backend.Health),
			Suggestion: probeSuggestion(c.Source),
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s: %d task%s (%s)",
			c.Source.Name, len(report.Tasks), pluralize(len(report.Tasks)), elapsed),
	}
}

// probeSuggestion names the most likely fix per backend kind.
func probeSuggestion(sc config.SourceConfig) string {
	switch sc.Type {
	case "docker":
		return "Is the Docker daemon running? Check DOCKER_HOST and the socket permissions"
	case "tes":
		return fmt.Sprintf("Is the service up? curl %s/v1/tasks", sc.URL)
	case "local":
		return "Process listing failed; check /proc permissions"
	default:
		return "Check the source configuration"
	}
}
