package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Detail graph dimensions.
const (
	detailGraphHeight = 4
	detailHistory     = 60
)

// renderDetailView renders the expanded single-task view. The body
// scrolls through the viewport once the terminal size is known;
// before that it renders flat.
func (m Model) renderDetailView() string {
	rec, ok := m.SelectedTask()
	if !ok {
		return m.styles.Muted.Render("No task selected") + "\n" + m.renderDetailFooter()
	}

	var b strings.Builder
	b.WriteString(m.renderDetailHeader(rec))
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.renderDetailContent())
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetailFooter())
	return b.String()
}

// updateDetailViewportContent refreshes the scrollable body. Called on
// entry, on new snapshots, and on resize.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent())
}

// renderDetailHeader renders the task name and status prominently.
func (m Model) renderDetailHeader(rec *state.TaskRecord) string {
	title := m.styles.Title.Render(rec.Name)
	status := m.styles.StatusGlyph(rec.Status, m.spinnerFrame) + " " +
		m.styles.Label.Render(rec.Status.String())
	return fmt.Sprintf("%s  %s", title, status)
}

// renderDetailContent builds the section stack for the selected task.
func (m Model) renderDetailContent() string {
	rec, ok := m.SelectedTask()
	if !ok {
		return m.styles.Muted.Render("No task selected")
	}

	width := m.detailWidth()

	var b strings.Builder
	b.WriteString(m.renderDetailOverview(rec, width))
	b.WriteString("\n")
	if rec.Err != "" {
		b.WriteString(m.renderDetailError(rec, width))
		b.WriteString("\n")
	}
	b.WriteString(m.renderDetailCPU(rec, width))
	b.WriteString("\n")
	b.WriteString(m.renderDetailMemory(rec, width))
	b.WriteString("\n")
	b.WriteString(m.renderDetailBackend(rec, width))
	return b.String()
}

// detailWidth sizes the detail sections from the terminal.
func (m Model) detailWidth() int {
	w := m.width - 6
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// renderDetailOverview renders identity, progress, and timestamps.
func (m Model) renderDetailOverview(rec *state.TaskRecord, width int) string {
	now := time.Now()

	var lines []string
	lines = append(lines, m.styles.Title.Render("Task"))
	lines = append(lines, "")

	lines = append(lines, m.detailField("ID", m.snap.Resolve(rec.ID)))
	lines = append(lines, m.detailField("Backend", m.snap.Resolve(rec.Backend)))

	barWidth := width - 24
	if barWidth < 16 {
		barWidth = 16
	}
	progress := m.styles.Label.Render("  Progress  ") + ui.ProgressCell(rec.Progress, barWidth)
	lines = append(lines, progress)

	lines = append(lines, m.detailField("Created", ui.FormatAgo(rec.CreatedAt, now)))
	lines = append(lines, m.detailField("Updated", ui.FormatAgo(rec.UpdatedAt, now)))

	return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
}

// renderDetailError renders the task's last error message.
func (m Model) renderDetailError(rec *state.TaskRecord, width int) string {
	var lines []string
	lines = append(lines, m.styles.Title.Render("Error"))
	lines = append(lines, "")
	lines = append(lines, m.styles.Notice.Render("  "+rec.Err))
	return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
}

// renderDetailCPU renders the CPU history graph.
func (m Model) renderDetailCPU(rec *state.TaskRecord, width int) string {
	var lines []string
	lines = append(lines, m.styles.Title.Render("CPU"))
	lines = append(lines, "")

	series := rec.Samples.CPUSeries(detailHistory)
	if len(series) == 0 {
		lines = append(lines, m.styles.Muted.Render("  no samples yet"))
	} else {
		current := series[len(series)-1]
		lines = append(lines, m.styles.Label.Render("  Usage  ")+
			ui.MetricStyle(current).Render(ui.FormatPercent(current)))
		lines = append(lines, "")

		graph := ui.BrailleGraph(series, width-6, detailGraphHeight, m.styles.Theme.Graph)
		for _, gl := range strings.Split(graph, "\n") {
			lines = append(lines, "  "+gl)
		}
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  history (%d samples)", rec.Samples.Len())))
	}

	return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
}

// renderDetailMemory renders the memory history graph. Memory is in
// bytes, so the graph auto-scales to the observed range.
func (m Model) renderDetailMemory(rec *state.TaskRecord, width int) string {
	var lines []string
	lines = append(lines, m.styles.Title.Render("Memory"))
	lines = append(lines, "")

	series := rec.Samples.MemorySeries(detailHistory)
	if len(series) == 0 {
		lines = append(lines, m.styles.Muted.Render("  no samples yet"))
	} else {
		current := series[len(series)-1]
		lines = append(lines, m.styles.Label.Render("  Usage  ")+
			m.styles.Value.Render(ui.FormatBytes(current)))
		lines = append(lines, "")

		graph := ui.BrailleGraph(series, width-6, detailGraphHeight, m.styles.Theme.Graph)
		for _, gl := range strings.Split(graph, "\n") {
			lines = append(lines, "  "+gl)
		}
	}

	return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
}

// renderDetailBackend summarizes the backend the task runs on.
func (m Model) renderDetailBackend(rec *state.TaskRecord, width int) string {
	var lines []string
	lines = append(lines, m.styles.Title.Render("Backend"))
	lines = append(lines, "")

	b, ok := m.snap.Backend(rec.Backend)
	if !ok {
		lines = append(lines, m.styles.Muted.Render("  backend not tracked"))
		return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
	}

	identity := m.styles.HealthGlyph(b.Health) + " " +
		m.styles.Value.Render(b.Name) + " " +
		m.styles.Muted.Render(b.Kind.String())
	lines = append(lines, "  "+identity)
	lines = append(lines, m.detailField("Health", b.Health.String()))
	lines = append(lines, m.detailField("Tasks", fmt.Sprintf("%d active / %d tracked", b.ActiveTasks, b.TotalTasks)))
	lines = append(lines, m.detailField("Seen", ui.FormatAgo(b.LastSeen, time.Now())))

	return m.styles.Section.Width(width).Render(strings.Join(lines, "\n"))
}

// detailField renders an aligned "label value" line.
func (m Model) detailField(label, value string) string {
	return m.styles.Label.Render(fmt.Sprintf("  %-9s ", label)) + m.styles.Value.Render(value)
}

// renderDetailFooter renders navigation hints for the detail view.
func (m Model) renderDetailFooter() string {
	hints := []string{"Esc back", "j/k scroll", "q quit"}
	return m.styles.Footer.Render(strings.Join(hints, " | "))
}
