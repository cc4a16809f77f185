package cli

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI starts the full-screen portal. Extra views are pushed above the
// portal before the program starts.
func runTUI(app *App, initial []func(*SharedState) View) error {
	m := newAppModel(app, initial...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
