package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme used by every prompt.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(Primary)
	t.Focused.Title = t.Focused.Title.Foreground(Primary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(Danger)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(Danger)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(Primary)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(Primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(Secondary)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(Secondary).SetString("[✓] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(Muted).SetString("[ ] ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.NoColor{})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(Muted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(lipgloss.Color("#666666"))

	return t
}
