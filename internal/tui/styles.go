package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4")
	Secondary = lipgloss.Color("#04B575")
	Muted     = lipgloss.Color("#888888")
	Danger    = lipgloss.Color("#FF5F56")
	Caution   = lipgloss.Color("#FFBD2E")

	// Info styling
	InfoStyle = lipgloss.NewStyle().
			Foreground(Primary)

	// Warning styling
	WarnStyle = lipgloss.NewStyle().
			Foreground(Caution).
			Bold(true)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Command styling for follow-up instructions
	CommandStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Description styling
	DescStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)
