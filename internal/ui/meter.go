package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Meter renders a horizontal utilization bar with a position-based
// gradient: segments pick up the warning and critical colors as the
// bar crosses those thresholds.
func Meter(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	var sb strings.Builder
	empty := lipgloss.NewStyle().Foreground(ColorMuted)
	for i := 0; i < width; i++ {
		if i < filled {
			pos := float64(i+1) / float64(width) * 100
			sb.WriteString(lipgloss.NewStyle().Foreground(MetricColor(pos)).Render("█"))
		} else {
			sb.WriteString(empty.Render("░"))
		}
	}
	return sb.String()
}

// ProgressCell renders a compact task progress bar with a trailing
// percentage, sized for a table column. Progress is a 0-1 fraction.
func ProgressCell(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	// Leave room for " 100%".
	barWidth := width - 5
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := lipgloss.NewStyle().Foreground(ColorInfo).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("▱", barWidth-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, progress*100)
}
