// Package watch implements the hookwell live intake watch TUI.
package watch

import "github.com/charmbracelet/lipgloss"

// Theme centralizes all styling for the watch TUI.
// Even with a single default theme, this keeps all colors in one place
// and makes future theme support trivial.
type Theme struct {
	// Status colors
	StatusOK     lipgloss.Style
	StatusWarn   lipgloss.Style
	StatusFailed lipgloss.Style

	// Panel chrome
	Border    lipgloss.Style
	Title     lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style

	// Activity indicators
	TickerActive   lipgloss.Style
	TickerInactive lipgloss.Style

	// Page furniture
	ErrorBar lipgloss.Style
	Help     lipgloss.Style
}

func NewDefaultTheme() Theme {
	var (
		green  = lipgloss.Color("#00FF00")
		amber  = lipgloss.Color("#FFFF00")
		red    = lipgloss.Color("#FF0000")
		purple = lipgloss.Color("#874BFD")
		white  = lipgloss.Color("#FAFAFA")
		gold   = lipgloss.Color("#E5C07B")
		smoke  = lipgloss.Color("#888888")
		coal   = lipgloss.Color("#444444")
		slate  = lipgloss.Color("241")
	)

	return Theme{
		StatusOK:     lipgloss.NewStyle().Foreground(green),
		StatusWarn:   lipgloss.NewStyle().Foreground(amber),
		StatusFailed: lipgloss.NewStyle().Foreground(red),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Padding(0, 1),
		Dim:       lipgloss.NewStyle().Foreground(smoke),
		Highlight: lipgloss.NewStyle().Foreground(gold),

		TickerActive:   lipgloss.NewStyle().Foreground(green),
		TickerInactive: lipgloss.NewStyle().Foreground(coal),

		ErrorBar: lipgloss.NewStyle().Foreground(red),
		Help:     lipgloss.NewStyle().Foreground(slate),
	}
}
