package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/launcher"
)

// toolView shows the launch plan for a catalog tool or course page.
// The inline preview starts open for embeddable tools and can be toggled,
// except for a tool that points back at the page hosting it.
type toolView struct {
	state    *SharedState
	plan     launcher.LaunchPlan
	embedded bool
}

func newToolView(state *SharedState, tool domain.ToolDescriptor) *toolView {
	plan := launcher.Plan(tool, state.App.PageURL)
	return &toolView{state: state, plan: plan, embedded: plan.Embed}
}

func (v *toolView) ID() ViewID    { return ViewTool }
func (v *toolView) Title() string { return v.plan.Label }

func (v *toolView) ShortHelp() []key.Binding {
	if !v.plan.CanOpen() {
		return nil
	}
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open in browser")),
	}
	if !v.plan.SelfReference {
		label := "embed here"
		if v.embedded {
			label = "close embed"
		}
		hints = append(hints, key.NewBinding(key.WithKeys("e"), key.WithHelp("e", label)))
	}
	return hints
}

func (v *toolView) Init() tea.Cmd { return nil }

func (v *toolView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !v.plan.CanOpen() {
		return v, nil
	}
	switch {
	case k.String() == "o" || k.Type == tea.KeyEnter:
		return v, openURLCmd(v.state, v.plan.URL)
	case k.String() == "e":
		if v.plan.SelfReference {
			return v, outputCmd(formatter.StyleYellow.Render(launcher.SelfReferenceMessage))
		}
		v.embedded = !v.embedded
	}
	return v, nil
}

func (v *toolView) View() string {
	plan := v.plan
	plan.Embed = v.embedded
	return "\n" + formatter.Indent(formatter.FormatLaunchPlan(plan), 2)
}

// openURLCmd opens url through the app's opener and reports the outcome.
func openURLCmd(state *SharedState, url string) tea.Cmd {
	opener := state.App.opener()
	return func() tea.Msg {
		if err := opener.Open(context.Background(), url); err != nil {
			return cmdOutputMsg{output: formatter.Error(err)}
		}
		return cmdOutputMsg{output: formatter.StyleGreen.Render("Opened ") + url}
	}
}
