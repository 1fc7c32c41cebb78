package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/monitor"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// probeResult is one source's single-poll outcome.
type probeResult struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	OK        bool   `json:"ok"`
	Health    string `json:"health,omitempty"`
	Tasks     int    `json:"tasks"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// SourcesOutput is the JSON shape of 'taskdeck sources --json'.
type SourcesOutput struct {
	Sources []probeResult  `json:"sources"`
	Summary sourcesSummary `json:"summary"`
}

type sourcesSummary struct {
	Reachable int  `json:"reachable"`
	Failed    int  `json:"failed"`
	AllClear  bool `json:"all_clear"`
}

// sourcesCommand probes every configured source once and reports.
func sourcesCommand(jsonOut bool, timeout time.Duration) error {
	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	sources := make([]monitor.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src, err := monitor.NewSource(sc, 0)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	results := probeAll(sources, timeout)

	if jsonOut {
		return outputSourcesJSON(os.Stdout, results)
	}
	return outputSourcesText(results)
}

// probeAll polls each source once, in config order.
func probeAll(sources []monitor.Source, timeout time.Duration) []probeResult {
	results := make([]probeResult, 0, len(sources))
	for _, src := range sources {
		results = append(results, probeOne(src, timeout))
	}
	return results
}

func probeOne(src monitor.Source, timeout time.Duration) probeResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	report, err := src.Poll(ctx)
	elapsed := time.Since(start)

	res := probeResult{
		Name:      src.Name(),
		Kind:      src.Kind().String(),
		ElapsedMS: elapsed.Milliseconds(),
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.OK = true
	health := report.Backend.Health
	if health == state.HealthUnknown {
		// Same default the monitor applies to a successful poll.
		health = state.HealthHealthy
	}
	res.Health = health.String()
	res.Tasks = len(report.Tasks)
	return res
}

func outputSourcesJSON(w io.Writer, results []probeResult) error {
	output := SourcesOutput{Sources: results}
	for _, r := range results {
		if r.OK {
			output.Summary.Reachable++
		} else {
			output.Summary.Failed++
		}
	}
	output.Summary.AllClear = output.Summary.Failed == 0

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputSourcesText(results []probeResult) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render("Sources"))
	fmt.Println()

	reachable, failed := 0, 0
	for _, r := range results {
		if r.OK {
			reachable++
			taskWord := "tasks"
			if r.Tasks == 1 {
				taskWord = "task"
			}
			fmt.Printf("  %s %-16s %-8s %-12s %d %s %s\n",
				successStyle.Render(ui.SymbolSuccess),
				r.Name, r.Kind, r.Health, r.Tasks, taskWord,
				mutedStyle.Render(fmt.Sprintf("(%dms)", r.ElapsedMS)))
		} else {
			failed++
			fmt.Printf("  %s %-16s %-8s %s\n",
				errorStyle.Render(ui.SymbolFail),
				r.Name, r.Kind,
				errorStyle.Render(r.Error))
		}
	}

	fmt.Println()
	if failed == 0 {
		fmt.Printf("%s Every source is reachable\n", successStyle.Render(ui.SymbolSuccess))
	} else {
		fmt.Printf("%s %d reachable, %d failed\n", errorStyle.Render(ui.SymbolFail), reachable, failed)
	}

	return nil
}
