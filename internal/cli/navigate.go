package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

type pushViewMsg struct {
	view View
}

type popViewMsg struct{}

type replaceViewMsg struct {
	view View
}

// cmdOutputMsg carries text shown transiently over the current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

type quitMsg struct{}

// switchTabMsg selects a lesson tab by view name.
type switchTabMsg struct {
	name string
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func outputCmd(s string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func wizardCompleteOutput(s string) wizardCompleteMsg {
	return wizardCompleteMsg{nextCmd: outputCmd(s)}
}
