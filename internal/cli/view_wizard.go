package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/service"
)

// wizardView wraps a huh.Form as a View on the navigation stack.
// When the form completes, it sends a wizardCompleteMsg with the
// done callback's result.
type wizardView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newWizardView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{
		state:    state,
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: tea.Batch(cmd, doneCmd)}
		}
	}

	return v, cmd
}

func (v *wizardView) View() string {
	return v.form.View()
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.titleStr }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "unlock")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// unlockFunc checks a password against one item or tool.
type unlockFunc func(ctx context.Context, password string) error

// passwordWizard prompts for a password. On success then runs; a wrong
// password reports an error and leaves the entry locked.
func passwordWizard(state *SharedState, name string, unlock unlockFunc, then tea.Cmd) tea.Cmd {
	var password string
	form := passwordForm("Password for "+name, &password)

	done := func() tea.Cmd {
		pw := password
		return unlockCmd(unlock, pw, then)
	}
	return pushView(newWizardView(state, "Unlock", form, done))
}

func unlockCmd(unlock unlockFunc, password string, then tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		err := unlock(context.Background(), password)
		if errors.Is(err, service.ErrWrongPassword) {
			return cmdOutputMsg{output: formatter.StyleRed.Render("✖ Incorrect password.")}
		}
		if err != nil {
			return cmdOutputMsg{output: formatter.Error(err)}
		}
		if then != nil {
			return then()
		}
		return refreshViewMsg{}
	}
}
