package dash

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Theme is a named color set for the dashboard. The dark theme is the
// default electric-synthwave look; the light theme swaps the deep
// backgrounds for terminal defaults and dims the neon accents so the
// glyphs stay readable on white.
type Theme struct {
	Name string

	Bg      lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color

	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	Accent    lipgloss.Color
	AccentDim lipgloss.Color
	Graph     lipgloss.Color
}

// DarkTheme returns the default neon palette.
func DarkTheme() Theme {
	return Theme{
		Name:          "dark",
		Bg:            lipgloss.Color("#0A0A0F"), // Deep void
		Surface:       lipgloss.Color("#12121A"), // Dark surface
		Border:        lipgloss.Color("#2A2A4A"), // Glass border (purple tint)
		Healthy:       lipgloss.Color("#39FF14"), // Neon green
		Warning:       lipgloss.Color("#FFAA00"), // Electric amber
		Critical:      lipgloss.Color("#FF0055"), // Hot red-pink
		TextPrimary:   lipgloss.Color("#FFFFFF"),
		TextSecondary: lipgloss.Color("#B4B4D0"), // Lavender gray
		TextMuted:     lipgloss.Color("#6B6B8D"), // Purple-gray
		Accent:        lipgloss.Color("#FF2E97"), // Neon pink
		AccentDim:     lipgloss.Color("#BF40FF"), // Neon purple
		Graph:         lipgloss.Color("#00FFFF"), // Neon cyan
	}
}

// LightTheme returns a palette for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Name:          "light",
		Bg:            lipgloss.Color("#FAFAFA"),
		Surface:       lipgloss.Color("#EFEFF4"),
		Border:        lipgloss.Color("#C8C8DC"),
		Healthy:       lipgloss.Color("#11871B"),
		Warning:       lipgloss.Color("#B26A00"),
		Critical:      lipgloss.Color("#C2003F"),
		TextPrimary:   lipgloss.Color("#1A1A24"),
		TextSecondary: lipgloss.Color("#4A4A66"),
		TextMuted:     lipgloss.Color("#8A8AA3"),
		Accent:        lipgloss.Color("#C2187A"),
		AccentDim:     lipgloss.Color("#7A2BBF"),
		Graph:         lipgloss.Color("#00789E"),
	}
}

// ThemeByName resolves a config theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// RunningSpinnerFrames animate the running-task glyph.
// Braille dots give a subtle "working" effect.
var RunningSpinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Styles holds every derived lipgloss style the views use, built once
// from a theme so renders never re-construct styles per frame.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Title  lipgloss.Style
	Stats  lipgloss.Style
	Footer lipgloss.Style

	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Section      lipgloss.Style

	TableHeader lipgloss.Style
	Cursor      lipgloss.Style
	RowSelected lipgloss.Style

	PausedBadge   lipgloss.Style
	RejectedBadge lipgloss.Style
	Notice        lipgloss.Style

	HelpBox   lipgloss.Style
	HelpTitle lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// NewStyles derives the style set for a theme.
func NewStyles(th Theme) Styles {
	return Styles{
		Theme: th,

		Header: lipgloss.NewStyle().
			Foreground(th.TextPrimary).
			Bold(true).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),
		Stats: lipgloss.NewStyle().
			Foreground(th.TextSecondary),
		Footer: lipgloss.NewStyle().
			Foreground(th.TextMuted).
			Padding(0, 1),

		Label: lipgloss.NewStyle().Foreground(th.TextSecondary),
		Value: lipgloss.NewStyle().Foreground(th.TextPrimary),
		Muted: lipgloss.NewStyle().Foreground(th.TextMuted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1).
			MarginRight(1).
			MarginBottom(1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Accent).
			Padding(0, 1).
			MarginRight(1).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1).
			MarginBottom(1),

		TableHeader: lipgloss.NewStyle().
			Foreground(th.TextMuted).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),
		RowSelected: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),

		PausedBadge: lipgloss.NewStyle().
			Foreground(th.Bg).
			Background(th.Warning).
			Bold(true).
			Padding(0, 1),
		RejectedBadge: lipgloss.NewStyle().
			Foreground(th.Critical),
		Notice: lipgloss.NewStyle().
			Foreground(th.Critical),

		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Accent).
			Padding(1, 2),
		HelpTitle: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true).
			MarginBottom(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(th.TextPrimary).
			Bold(true).
			Width(14),
		HelpDesc: lipgloss.NewStyle().Foreground(th.TextSecondary),
	}
}

// StatusGlyph returns the styled status indicator for a task row.
// Running tasks animate through the spinner frames.
func (s Styles) StatusGlyph(st state.TaskStatus, frame int) string {
	switch st {
	case state.StatusQueued:
		return s.Label.Render(ui.SymbolQueued)
	case state.StatusRunning:
		glyph := RunningSpinnerFrames[frame%len(RunningSpinnerFrames)]
		return lipgloss.NewStyle().Foreground(s.Theme.Warning).Render(glyph)
	case state.StatusCompleted:
		return lipgloss.NewStyle().Foreground(s.Theme.Healthy).Render(ui.SymbolCompleted)
	case state.StatusFailed:
		return lipgloss.NewStyle().Foreground(s.Theme.Critical).Render(ui.SymbolFailed)
	case state.StatusCancelled:
		return s.Muted.Render(ui.SymbolCancelled)
	default:
		return s.Muted.Render(ui.SymbolUnknown)
	}
}

// HealthGlyph returns the styled health indicator for a backend card.
func (s Styles) HealthGlyph(h state.Health) string {
	switch h {
	case state.HealthHealthy:
		return lipgloss.NewStyle().Foreground(s.Theme.Healthy).Render(ui.SymbolHealthy)
	case state.HealthDegraded:
		return lipgloss.NewStyle().Foreground(s.Theme.Warning).Render(ui.SymbolDegraded)
	case state.HealthUnreachable:
		return lipgloss.NewStyle().Foreground(s.Theme.Critical).Render(ui.SymbolUnreachable)
	default:
		return s.Muted.Render(ui.SymbolUnknown)
	}
}
