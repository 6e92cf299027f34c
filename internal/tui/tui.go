package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
