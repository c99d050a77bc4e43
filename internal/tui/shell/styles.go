package shell

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#268bd2")
	colorAccent  = lipgloss.Color("#2aa198")
	colorError   = lipgloss.Color("#dc322f")
	colorMuted   = lipgloss.Color("#586875")
	colorFg      = lipgloss.Color("#eee8d5")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	TranscriptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ErrorOutputStyle = lipgloss.NewStyle().
				Foreground(colorError)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#073642")).
			Foreground(colorFg).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
