package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/intern"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Table column widths. Name takes whatever is left.
const (
	colCursor   = 2
	colGlyph    = 2
	colBackend  = 12
	colStatus   = 10
	colProgress = 17
	colCPU      = 7
	colMem      = 9
	colUpdated  = 16

	minNameWidth = 12
	maxNameWidth = 32
)

// renderDashboard renders the main view: header, backend strip, task
// table, footer.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	strip := m.renderBackendStrip()
	if strip != "" {
		b.WriteString(strip)
		b.WriteString("\n")
	}

	b.WriteString(m.renderTaskTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with summary stats and badges.
func (m Model) renderHeader() string {
	snap := m.snap

	title := m.styles.Title.Render("taskdeck")

	stats := fmt.Sprintf(" | %d tasks | %d active | %d backends | updated %s",
		snap.TaskCount(),
		snap.ActiveTasks(),
		snap.BackendCount(),
		ui.FormatAgo(snap.TakenAt, time.Now()),
	)

	line := title + m.styles.Stats.Render(stats)

	if snap.Paused {
		line += " " + m.styles.PausedBadge.Render("PAUSED")
	}
	if snap.Rejected > 0 {
		line += m.styles.RejectedBadge.Render(fmt.Sprintf(" ✗ %d rejected", snap.Rejected))
	}

	return m.styles.Header.Render(line)
}

// renderTaskTable renders the filtered, sorted task rows.
func (m Model) renderTaskTable() string {
	if len(m.rows) == 0 {
		if m.snap.TaskCount() > 0 {
			return m.styles.Muted.Render("  No tasks match the current filters")
		}
		return m.styles.Muted.Render("  No tasks yet")
	}

	nameWidth := m.nameColumnWidth()

	var b strings.Builder

	header := strings.Repeat(" ", colCursor+colGlyph) +
		pad("NAME", nameWidth) +
		pad("BACKEND", colBackend) +
		pad("STATUS", colStatus) +
		pad("PROGRESS", colProgress) +
		pad("CPU", colCPU) +
		pad("MEM", colMem) +
		"UPDATED"
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	for i, t := range m.rows {
		b.WriteString(m.renderTaskRow(t, nameWidth, i == m.selected))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTaskRow renders one task line.
func (m Model) renderTaskRow(t *state.TaskRecord, nameWidth int, selected bool) string {
	cursor := "  "
	nameStyle := m.styles.Value
	if selected {
		cursor = m.styles.Cursor.Render("▸ ")
		nameStyle = m.styles.RowSelected
	}

	glyph := m.styles.StatusGlyph(t.Status, m.spinnerFrame) + " "
	name := nameStyle.Render(pad(t.Name, nameWidth))
	backend := m.styles.Label.Render(pad(m.snap.Resolve(t.Backend), colBackend))
	status := m.styles.Label.Render(pad(t.Status.String(), colStatus))

	// ProgressCell renders exactly colProgress-1 columns for any input.
	progress := ui.ProgressCell(t.Progress, colProgress-1) + " "

	var cpu, mem string
	if s, ok := t.Samples.Last(); ok && t.Status == state.StatusRunning {
		cpu = ui.MetricStyle(s.CPU).Render(pad(ui.FormatPercent(s.CPU), colCPU))
		mem = m.styles.Value.Render(pad(ui.FormatBytes(s.Memory), colMem))
	} else {
		cpu = m.styles.Muted.Render(pad("-", colCPU))
		mem = m.styles.Muted.Render(pad("-", colMem))
	}

	updated := m.styles.Muted.Render(ui.FormatAgo(t.UpdatedAt, time.Now()))

	return cursor + glyph + name + backend + status + progress + cpu + mem + updated
}

// nameColumnWidth sizes the name column from the terminal width,
// leaving the fixed columns room.
func (m Model) nameColumnWidth() int {
	fixed := colCursor + colGlyph + colBackend + colStatus + colProgress + colCPU + colMem + colUpdated
	w := m.width - fixed
	if m.width == 0 {
		w = 20 // before the first WindowSizeMsg
	}
	if w < minNameWidth {
		w = minNameWidth
	}
	if w > maxNameWidth {
		w = maxNameWidth
	}
	return w
}

// renderFooter renders the view criteria and keyboard hints.
func (m Model) renderFooter() string {
	snap := m.snap

	backendName := "all"
	if snap.BackendFilter != intern.None {
		backendName = snap.Resolve(snap.BackendFilter)
	}

	criteria := fmt.Sprintf("sort %s | filter %s | backend %s",
		snap.Sort, snap.Filter, backendName)

	hints := []string{
		"p pause",
		"s sort",
		"f filter",
		"? help",
		"q quit",
	}

	line := criteria + "    " + strings.Join(hints, " | ")
	if m.notice != "" {
		line += "  " + m.styles.Notice.Render("✗ "+m.notice)
	}

	return m.styles.Footer.Render(line)
}

// pad right-pads plain text to w display columns, truncating with an
// ellipsis when it is too long. The last column stays blank so cells
// never touch. Style the result, not the input: ANSI codes would throw
// the truncation off.
func pad(s string, w int) string {
	s = truncate(s, w-1)
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// truncate shortens a string to maxLen display columns, adding an
// ellipsis if it was cut.
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
