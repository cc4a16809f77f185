package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func TestNewAppModelStartsAtPortal(t *testing.T) {
	m := newAppModel(testApp(t).app)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPortal, m.activeView().ID())
}

func TestNewAppModelWithInitialViews(t *testing.T) {
	stub := newStubView(ViewLesson, "Lesson", "lesson")
	m := newAppModel(testApp(t).app, func(*SharedState) View { return stub })

	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewPortal, m.viewStack[0].ID())
	assert.Equal(t, stub, m.activeView())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newAppModel(testApp(t).app)
	v2 := newStubView(ViewLesson, "Lesson", "lesson view")
	v3 := newStubView(ViewTool, "Tool", "tool view")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, cmd = m.Update(replaceViewMsg{view: v3})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v3, m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPortal, m.activeView().ID())

	// The portal is never popped.
	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_HomeUnwindsStack(t *testing.T) {
	m := newAppModel(testApp(t).app)
	for _, id := range []ViewID{ViewLesson, ViewTool, ViewForm} {
		model, _ := m.Update(pushViewMsg{view: newStubView(id, "", "")})
		m = model.(appModel)
	}
	require.Len(t, m.viewStack, 4)

	model, _ := m.Update(homeMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPortal, m.activeView().ID())
}

func TestAppModel_WindowResizeReachesEveryView(t *testing.T) {
	m := newAppModel(testApp(t).app)
	bottom := newStubView(ViewPortal, "", "portal")
	top := newStubView(ViewLesson, "Lesson", "lesson")
	m.viewStack = []View{bottom, top}

	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	assert.Equal(t, 25, m.state.ContentHeight())
	assert.NotZero(t, m.cmdBar.input.Width)
	for _, v := range []*stubView{bottom, top} {
		require.Len(t, v.updateSeen, 1)
		_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
		assert.True(t, ok)
	}
}

func TestAppModel_MouseBelowHeader(t *testing.T) {
	m := newAppModel(testApp(t).app)
	v := newStubView(ViewLesson, "Lesson", "lesson")
	m.viewStack = []View{v}

	model, _ := m.Update(tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = model.(appModel)
	require.Len(t, v.updateSeen, 1)
	mouse := v.updateSeen[0].(tea.MouseMsg)
	assert.Equal(t, 3, mouse.X)
	assert.Equal(t, 7-headerHeight, mouse.Y)
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("colon focuses command bar", func(t *testing.T) {
		m := newAppModel(testApp(t).app)
		require.False(t, m.cmdBar.Focused())

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.True(t, m.cmdBar.Focused())
		assert.True(t, m.state.CmdFocused)
	})

	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m := newAppModel(testApp(t).app)
		m.viewStack = []View{newStubView(ViewLesson, "Lesson", "lesson")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("form receives q and does not quit", func(t *testing.T) {
		m := newAppModel(testApp(t).app)
		v := newStubView(ViewForm, "Unlock", "form")
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc dismisses output before popping", func(t *testing.T) {
		m := newAppModel(testApp(t).app)
		m.viewStack = []View{
			newStubView(ViewPortal, "", "portal"),
			newStubView(ViewLesson, "Lesson", "lesson"),
		}
		m.lastOutput = "stale output"
		m.outputActive = true

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Nil(t, cmd)
		require.Len(t, m.viewStack, 2)
		assert.Empty(t, m.lastOutput)
		assert.False(t, m.outputActive)

		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Len(t, m.viewStack, 1)
	})
}

func TestAppModel_WizardCompleteAndOutput(t *testing.T) {
	m := newAppModel(testApp(t).app)
	m.viewStack = []View{
		newStubView(ViewPortal, "", "portal"),
		newStubView(ViewForm, "Unlock", "wizard"),
	}

	next := func() tea.Msg { return cmdOutputMsg{output: "done"} }

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	assert.False(t, m.cmdBar.Focused())
	require.Len(t, m.viewStack, 1)

	batchMsg := cmd()
	batch, ok := batchMsg.(tea.BatchMsg)
	require.True(t, ok, "expected tea.BatchMsg, got %T", batchMsg)
	var gotOutput, gotRefresh bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch c().(type) {
		case cmdOutputMsg:
			gotOutput = true
		case refreshViewMsg:
			gotRefresh = true
		}
	}
	assert.True(t, gotOutput, "batch should contain cmdOutputMsg")
	assert.True(t, gotRefresh, "batch should contain refreshViewMsg")

	model, cmd = m.Update(cmdOutputMsg{output: "hello"})
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Contains(t, m.View(), "hello")
}

func TestAppModel_RefreshReachesEveryView(t *testing.T) {
	m := newAppModel(testApp(t).app)
	bottom := newStubView(ViewPortal, "", "portal")
	top := newStubView(ViewLesson, "Lesson", "lesson")
	m.viewStack = []View{bottom, top}

	model, _ := m.Update(refreshViewMsg{})
	m = model.(appModel)
	assert.Len(t, bottom.updateSeen, 1)
	assert.Len(t, top.updateSeen, 1)
}

func TestAppModel_HeaderBreadcrumb(t *testing.T) {
	m := newAppModel(testApp(t).app)
	m.viewStack = []View{
		newStubView(ViewPortal, "", "portal"),
		newStubView(ViewLesson, "Position and Velocity", "lesson"),
		newStubView(ViewForm, "Unlock", "form"),
	}
	assert.Contains(t, m.View(), "portal › Position and Velocity › Unlock")
}

func TestAppModel_OutputViewportScroll(t *testing.T) {
	m := newAppModel(testApp(t).app)
	m.viewStack = []View{newStubView(ViewPortal, "", "portal")}

	// Height 10 leaves a content height of 5.
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = model.(appModel)

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	content := strings.Join(lines, "\n")

	model, _ = m.Update(cmdOutputMsg{output: content})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	view := m.View()
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "pgup/pgdn")

	// Scroll down: output stays active.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	// Non-scroll key dismisses.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = model.(appModel)
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_OutputShortContentNoScroll(t *testing.T) {
	m := newAppModel(testApp(t).app)
	m.viewStack = []View{newStubView(ViewPortal, "", "portal")}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(appModel)

	model, _ = m.Update(cmdOutputMsg{output: "short output"})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	view := m.View()
	assert.Contains(t, view, "short output")
	assert.NotContains(t, view, "pgup/pgdn")
}

func TestIsOutputScrollKey(t *testing.T) {
	scrollKeys := []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD,
	}
	for _, k := range scrollKeys {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}), "expected scroll key: %v", k)
	}

	nonScrollKeys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyRunes, Runes: []rune{':'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
	}
	for _, k := range nonScrollKeys {
		assert.False(t, isOutputScrollKey(k), "expected non-scroll key: %v", k)
	}
}
