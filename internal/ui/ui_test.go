package ui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force color output so rendering is identical with and without a
	// TTY attached.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes escape sequences so tests can assert on content.
func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
