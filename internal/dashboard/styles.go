package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rdash/internal/ui"
)

// Width breakpoints for responsive layout
const (
	BreakpointCompact = 80
	BreakpointWide    = 120
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1).
			MarginBottom(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ui.ColorInfo)

	ServiceNameStyle = lipgloss.NewStyle().
				Foreground(ui.ColorPrimary).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)
)
