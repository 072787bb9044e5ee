package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// theme holds the emphasis renderers used by the text report.
type theme struct {
	emph    func(...string) string // counts and totals
	heading func(...string) string // SQL text
	dim     func(...string) string // separators
	code    func(...string) string // setup snippet
}

func newTheme(color bool) theme {
	if !color {
		return theme{emph: plain, heading: plain, dim: plain, code: plain}
	}
	return theme{
		emph:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).Render,
		heading: lipgloss.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion).Render,
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render,
		code:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render,
	}
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}
