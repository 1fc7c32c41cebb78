package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character. Unicode braille
// starts at U+2800 (empty) and sets one bit per dot:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8.
const brailleBase = '⠀'

// brailleDots maps [row][col] to the bit offset for the pattern, row
// 0-3 top to bottom, col 0-1 left to right.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// BrailleGraph plots history as a braille grid, two data points per
// character column and four levels per row. Percentage data (entirely
// within 0-100) is pinned to that range and colored per column by the
// metric thresholds; anything else auto-scales and uses base. Short
// histories right-align so the newest readings sit by the axis.
func BrailleGraph(data []float64, width, height int, base lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lo, hi := bounds(data)
	isPercent := lo >= 0 && hi <= 100
	if isPercent {
		lo, hi = 0, 100
	}

	targetPoints := width * 2
	points := data
	if len(data) > targetPoints {
		points = resample(data, targetPoints)
	}
	offset := targetPoints - len(points)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}
	colPeaks := make([]float64, width)

	totalDots := height * 4
	for i, v := range points {
		col := (i + offset) / 2
		if col >= width {
			continue
		}
		if v > colPeaks[col] {
			colPeaks[col] = v
		}
		subCol := (i + offset) % 2

		filled := int(normalize(v, lo, hi) * float64(totalDots))
		if filled > totalDots {
			filled = totalDots
		}
		for dot := 0; dot < filled; dot++ {
			row := height - 1 - dot/4
			if row < 0 {
				continue
			}
			subRow := 3 - dot%4
			grid[row][col] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	lines := make([]string, 0, height)
	for _, row := range grid {
		var sb strings.Builder
		for col, ch := range row {
			color := base
			if isPercent {
				color = MetricColor(colPeaks[col])
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(ch)))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	n := (v - lo) / (hi - lo)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
