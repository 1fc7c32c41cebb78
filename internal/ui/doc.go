// Package ui provides the terminal rendering primitives the dashboard
// is built from: the color palette, status glyphs, sparklines, braille
// graphs, and meters, all styled with Lip Gloss.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Completed tasks, healthy backends
//	ColorError     (red)    - Failures, critical utilization
//	ColorWarning   (yellow) - Queued work, degraded backends
//	ColorInfo      (cyan)   - Running tasks, accents
//	ColorMuted     (gray)   - Secondary text, empty meter segments
//	ColorSecondary (blue)   - Labels
//
// Metric coloring is threshold based: green below 70%, yellow from 70%,
// red from 90%. MetricColor and MetricStyle apply the mapping.
//
// # Graphs
//
// Three renderers cover the dashboard's needs:
//
//	Sparkline      - one-row block graph, auto-scaled to the data
//	PercentSparkline - one-row block graph pinned to the 0-100 range
//	BrailleGraph   - multi-row braille plot, 2x4 dots per cell
//
// All of them resample to the requested width, preserving peaks when
// compressing history.
package ui
