package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/doctor"
	"github.com/taskdeck/taskdeck/internal/ui"
)

var doctorJSON bool

// doctorCmd runs configuration and environment diagnostics.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and source problems",
	Long: `Run diagnostic checks on the taskdeck setup.

Checks that the config file loads and validates, probes every
configured source once, and verifies the environment the dashboard
needs (a terminal, a writable log file).

Examples:
  taskdeck doctor
  taskdeck doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(doctorJSON)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    DoctorSummary    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// DoctorSummary summarizes the check results.
type DoctorSummary struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(jsonOut bool) error {
	checks := collectChecks(Config())

	// Source probes dominate the runtime; run everything at once.
	results := doctor.RunAllParallel(checks)

	if jsonOut {
		return outputDoctorJSON(os.Stdout, checks, results)
	}
	return outputDoctorText(checks, results)
}

// collectChecks builds the check list for the effective config.
func collectChecks(explicit string) []doctor.Check {
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: explicit},
		&doctor.ConfigValidCheck{ConfigPath: explicit},
	}

	// Per-source probes only when the config loads; the config checks
	// above report the failure otherwise.
	if cfg, err := config.LoadOrDefault(explicit); err == nil {
		for _, sc := range cfg.Sources {
			checks = append(checks, &doctor.SourceCheck{Source: sc})
		}
	}

	checks = append(checks,
		&doctor.TerminalCheck{},
		&doctor.LogFileCheck{},
	)
	return checks
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	categoryOrder := []string{}

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = DoctorSummary{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render("taskdeck Diagnostic Report"))
	fmt.Println()

	categoryOrder := []string{"CONFIG", "SOURCES", "ENVIRONMENT"}
	grouped := make(map[string][]int) // category -> indices
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range categoryOrder {
		indices, ok := grouped[category]
		if !ok || len(indices) == 0 {
			continue
		}

		fmt.Println(headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(results[idx], successStyle, errorStyle, warnStyle, mutedStyle)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	if doctor.HasIssues(results) {
		fmt.Printf("%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Printf("%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}

	fmt.Println()
	return nil
}

// renderCheckResult renders a single check result.
func renderCheckResult(result doctor.CheckResult, successStyle, errorStyle, warnStyle, mutedStyle lipgloss.Style) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = successStyle
	case doctor.StatusWarn:
		symbol = ui.SymbolDegraded
		style = warnStyle
	case doctor.StatusFail:
		symbol = ui.SymbolFail
		style = errorStyle
	}

	fmt.Printf("  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Printf("    %s\n", mutedStyle.Render(line))
		}
	}
}
