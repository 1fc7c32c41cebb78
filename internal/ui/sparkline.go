package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution,
// lowest to highest.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a one-row block graph auto-scaled to the data's
// range, colored by the most recent value's metric threshold. History
// longer than width is resampled down, preserving peaks.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	lo, hi := bounds(data)
	points := resample(data, fitWidth(len(data), width))

	var sb strings.Builder
	for _, v := range points {
		sb.WriteRune(sparklineBlocks[levelFor(v, lo, hi)])
	}

	color := MetricColor(data[len(data)-1])
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// PercentSparkline renders a one-row block graph pinned to the 0-100
// range in a single accent color. The fixed scale keeps adjacent
// graphs comparable.
func PercentSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	points := resample(data, fitWidth(len(data), width))
	var sb strings.Builder
	for _, v := range points {
		sb.WriteRune(sparklineBlocks[levelFor(v, 0, 100)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// fitWidth keeps short histories at their natural length so the graph
// grows from the left instead of stretching a few points across the
// whole width.
func fitWidth(have, width int) int {
	if have < width {
		return have
	}
	return width
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// levelFor maps a value onto the 8 block levels. A flat range lands in
// the middle.
func levelFor(v, lo, hi float64) int {
	if hi <= lo {
		return len(sparklineBlocks) / 2
	}
	level := int((v - lo) / (hi - lo) * float64(len(sparklineBlocks)-1))
	if level < 0 {
		return 0
	}
	if level >= len(sparklineBlocks) {
		return len(sparklineBlocks) - 1
	}
	return level
}

// resample fits data to the target size. Downsampling takes the max of
// each bucket so spikes survive compression; upsampling interpolates
// linearly.
func resample(data []float64, target int) []float64 {
	if len(data) == 0 || target <= 0 {
		return nil
	}
	if len(data) == target {
		return data
	}
	out := make([]float64, target)

	if len(data) == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}

	if len(data) > target {
		bucket := float64(len(data)) / float64(target)
		for i := 0; i < target; i++ {
			start := int(float64(i) * bucket)
			end := int(float64(i+1) * bucket)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			peak := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > peak {
					peak = data[j]
				}
			}
			out[i] = peak
		}
		return out
	}

	scale := float64(len(data)-1) / float64(target-1)
	for i := 0; i < target; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)
		if idx >= len(data)-1 {
			out[i] = data[len(data)-1]
			continue
		}
		out[i] = data[idx]*(1-frac) + data[idx+1]*frac
	}
	return out
}
