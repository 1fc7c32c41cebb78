package dash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "q / Ctrl+C", Desc: "Quit"},
	{Key: "p", Desc: "Pause / resume the view"},
	{Key: "s", Desc: "Cycle sort order"},
	{Key: "f", Desc: "Cycle status filter"},
	{Key: "b", Desc: "Cycle backend filter"},
	{Key: "r", Desc: "Reset filters"},
	{Key: "up / k", Desc: "Select previous task"},
	{Key: "down / j", Desc: "Select next task"},
	{Key: "Home", Desc: "Select first task"},
	{Key: "End", Desc: "Select last task"},
	{Key: "Enter", Desc: "Expand selected task"},
	{Key: "Esc", Desc: "Collapse / close"},
	{Key: "?", Desc: "Toggle this help"},
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
// The baseContent parameter is preserved for future overlay blending.
func (m Model) renderHelpOverlay(_ string) string {
	var lines []string
	lines = append(lines, m.styles.HelpTitle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, binding := range helpBindings {
		line := m.styles.HelpKey.Render(binding.Key) + m.styles.HelpDesc.Render(binding.Desc)
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Label.Render("Press ? to close"))

	helpBox := m.styles.HelpBox.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(m.styles.Theme.Bg),
	)
}
