package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Backend card layout constants.
const (
	backendCardWidth  = 30
	backendSparkWidth = 24
	backendMeterWidth = 16
)

// renderBackendStrip renders one card per backend, wrapped into rows
// that fit the terminal width.
func (m Model) renderBackendStrip() string {
	backends := m.snap.Backends()
	if len(backends) == 0 {
		return ""
	}

	var cards []string
	for _, b := range backends {
		cards = append(cards, m.renderBackendCard(b))
	}

	return m.layoutCards(cards, backendCardWidth)
}

// renderBackendCard renders a single backend card: identity line,
// task counts, utilization, last contact.
func (m Model) renderBackendCard(b *state.BackendRecord) string {
	style := m.styles.Card.Width(backendCardWidth)
	if sel, ok := m.SelectedTask(); ok && sel.Backend == b.ID {
		style = m.styles.CardSelected.Width(backendCardWidth)
	}

	var lines []string

	title := m.styles.HealthGlyph(b.Health) + " " +
		m.styles.Value.Bold(true).Render(b.Name) + " " +
		m.styles.Muted.Render(b.Kind.String())
	lines = append(lines, title)

	counts := fmt.Sprintf("%d active / %d tracked", b.ActiveTasks, b.TotalTasks)
	lines = append(lines, m.styles.Label.Render(counts))

	if s, ok := b.Utilization.Last(); ok {
		cpuLine := m.styles.Label.Render("cpu ") +
			ui.Meter(s.CPU, backendMeterWidth) + " " +
			ui.MetricStyle(s.CPU).Render(fmt.Sprintf("%3.0f%%", s.CPU))
		lines = append(lines, cpuLine)

		memLine := m.styles.Label.Render("mem ") +
			m.styles.Value.Render(ui.FormatBytes(s.Memory))
		lines = append(lines, memLine)

		series := b.Utilization.CPUSeries(backendSparkWidth)
		if len(series) > 1 {
			lines = append(lines, ui.PercentSparkline(series, backendSparkWidth, m.styles.Theme.Graph))
		}
	} else {
		lines = append(lines, m.styles.Muted.Render("no usage data"))
	}

	seen := "seen " + ui.FormatAgo(b.LastSeen, time.Now())
	lines = append(lines, m.styles.Muted.Render(seen))

	return style.Render(strings.Join(lines, "\n"))
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string, cardWidth int) string {
	if len(cards) == 0 {
		return ""
	}

	cardsPerRow := 1
	if m.width > 0 {
		// Account for card margins and borders
		effectiveCardWidth := cardWidth + 3
		cardsPerRow = m.width / effectiveCardWidth
		if cardsPerRow < 1 {
			cardsPerRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := i + cardsPerRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
