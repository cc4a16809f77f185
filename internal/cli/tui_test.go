package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/service"
	"github.com/honphysics/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSampleLesson unlocks lesson 2-1 and opens it through the command bar.
func openSampleLesson(t *testing.T) (*testEnv, *TestDriver) {
	t.Helper()
	env := testApp(t)
	env.unlockSample(t)
	d := NewTestDriver(t, env.app)
	d.Command("open 2-1")
	require.Equal(t, ViewLesson, d.ActiveViewID())
	return env, d
}

func TestTUI_PortalListsCatalog(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	assert.Equal(t, []ViewID{ViewPortal}, d.ViewStackIDs())
	view := d.View()
	assert.Contains(t, view, "Unit 1 — The Science of Physics")
	assert.Contains(t, view, "2.1 Position and Velocity")
	assert.Contains(t, view, "TOOLKIT")
	assert.Contains(t, view, "Vector Adder")
	assert.Contains(t, view, "🔒")
	assert.Len(t, d.Portal().entries, 5)
}

func TestTUI_PortalCursorClamps(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	d.PressUp()
	assert.Equal(t, 0, d.Portal().cursor)
	for range 10 {
		d.PressKey('j')
	}
	assert.Equal(t, 4, d.Portal().cursor)
	d.PressKey('k')
	assert.Equal(t, 3, d.Portal().cursor)
}

func TestTUI_PortalEmptyCatalog(t *testing.T) {
	env := testApp(t)
	path := testutil.WriteFile(t, env.content, "empty.json", `{"units": [], "tools": []}`)
	_, err := env.app.Courses.Import(context.Background(), path)
	require.NoError(t, err)

	d := NewTestDriver(t, env.app)
	assert.Contains(t, d.View(), "No course imported")
}

func TestTUI_OpenUnlockedItemShowsToolView(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	// First entry: 1-1, an unlocked external page.
	d.PressEnter()
	require.Equal(t, ViewTool, d.ActiveViewID())
	assert.Contains(t, d.View(), "https://physics.example.edu/course/units/1_1_2intro/index.html")

	d.PressKey('o')
	assert.Equal(t, []string{"https://physics.example.edu/course/units/1_1_2intro/index.html"}, env.opener.URLs)
	assert.Contains(t, d.LastOutput(), "Opened")
}

func TestTUI_ToolEmbedToggle(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)
	d.PressEnter()
	require.Equal(t, ViewTool, d.ActiveViewID())
	assert.NotContains(t, d.View(), "height 70vh", "course pages open in a new tab")

	d.PressKey('e')
	assert.Contains(t, d.View(), "height 70vh")

	d.PressKey('e')
	assert.NotContains(t, d.View(), "height 70vh")
	assert.Empty(t, env.opener.URLs)
}

func TestToolView_SelfReferenceNeverEmbeds(t *testing.T) {
	env := testApp(t)
	state := &SharedState{App: env.app}
	v := newToolView(state, domain.ToolDescriptor{Label: "Self", Href: "#top"})
	require.True(t, v.plan.SelfReference)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	require.NotNil(t, cmd)
	out, ok := cmd().(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, out.output, "same page")
	assert.False(t, v.embedded)
	assert.NotContains(t, v.View(), "height")
	for _, b := range v.ShortHelp() {
		assert.NotEqual(t, "e", b.Help().Key)
	}
}

func TestTUI_OpenLockedItemAsksForPassword(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	d.PressDown() // 1-3, locked
	d.PressEnter()
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, d.View(), "Password for 1.3 Measurement")

	// Forms receive q and : instead of the global shortcuts.
	d.PressKey('q')
	assert.False(t, d.IsQuitting())
	assert.False(t, d.CmdBarFocused())

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewPortal}, d.ViewStackIDs())
	assert.Contains(t, d.LastOutput(), "Cancelled.")
}

func TestTUI_OpenLockedLessonViaCommand(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	d.Command("open 2-1")
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, d.View(), "Password for lesson 2-1")
}

func TestTUI_OpenUnknownLesson(t *testing.T) {
	env := testApp(t)
	env.unlockSample(t)
	d := NewTestDriver(t, env.app)

	d.Command("open 9-9")
	assert.Equal(t, ViewPortal, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "✖")
}

func TestTUI_UnlockCmd(t *testing.T) {
	env := testApp(t)
	unlock := func(ctx context.Context, pw string) error { return env.app.Courses.Unlock(ctx, "1-3", pw) }

	msg := unlockCmd(unlock, "wrong", nil)()
	out, ok := msg.(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, out.output, "Incorrect password")

	msg = unlockCmd(unlock, "physics", nil)()
	assert.IsType(t, refreshViewMsg{}, msg)
	ok, err := env.app.Courses.IsUnlocked(context.Background(), "1-3")
	require.NoError(t, err)
	assert.True(t, ok)

	then := func() tea.Msg { return popViewMsg{} }
	assert.IsType(t, popViewMsg{}, unlockCmd(unlock, "physics", then)())

	failing := func(context.Context, string) error { return errors.New("disk full") }
	out, ok = unlockCmd(failing, "x", nil)().(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, out.output, "disk full")
}

func TestTUI_UnlockCommandUnknownID(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	d.Command("unlock nope")
	assert.Contains(t, d.LastOutput(), "No item or tool with id nope")

	d.Command("unlock sigfig")
	assert.Equal(t, ViewForm, d.ActiveViewID())
}

func TestTUI_RefreshShowsUnlockBadge(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)
	assert.NotContains(t, d.View(), "🔓")

	require.NoError(t, env.app.Courses.Unlock(context.Background(), "1-3", "physics"))
	d.Send(refreshViewMsg{})
	assert.Contains(t, d.View(), "🔓")
}

func TestTUI_LessonTabsAndBreadcrumb(t *testing.T) {
	_, d := openSampleLesson(t)

	view := d.View()
	assert.Contains(t, view, "portal › Position and Velocity")
	assert.Contains(t, view, "[1 Overview]")
	assert.Contains(t, view, "Motion in One Dimension")

	d.PressTab()
	assert.Equal(t, domain.ViewNotes, d.Lesson().activeTab())
	assert.Contains(t, d.View(), "Reference frames")

	d.SendKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.ViewOverview, d.Lesson().activeTab())

	d.PressKey('5')
	assert.Equal(t, domain.ViewImages, d.Lesson().activeTab())
	d.PressKey('9')
	assert.Equal(t, domain.ViewImages, d.Lesson().activeTab())
}

func TestTUI_TabCommand(t *testing.T) {
	_, d := openSampleLesson(t)

	d.Command("tab examples")
	assert.Equal(t, domain.ViewExamples, d.Lesson().activeTab())

	d.Command("tab Notes")
	assert.Equal(t, domain.ViewNotes, d.Lesson().activeTab())

	d.Command("tab practice")
	assert.Contains(t, d.LastOutput(), `No tab named "practice"`)
}

func TestTUI_LessonRecordsVisits(t *testing.T) {
	env, d := openSampleLesson(t)
	d.PressKey('2')

	visits, err := env.app.Lessons.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, domain.ViewNotes, visits[0].View)
	assert.Equal(t, domain.ViewOverview, visits[1].View)
}

func TestTUI_StepperKeys(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	require.Equal(t, domain.ViewExamples, d.Lesson().activeTab())

	st := d.Lesson().stepper
	assert.Equal(t, 0, st.ctrl.Revealed())
	assert.Contains(t, d.View(), "3 more…")

	d.PressRight()
	d.PressSpace()
	assert.Equal(t, 2, st.ctrl.Revealed())
	assert.Contains(t, d.View(), "returns to x = 4 m")

	d.PressLeft()
	assert.Equal(t, 1, st.ctrl.Revealed())

	d.PressKey('a')
	assert.Equal(t, 3, st.ctrl.Revealed())
	assert.Contains(t, d.View(), "3/3")

	d.PressRight()
	assert.Equal(t, 3, st.ctrl.Revealed(), "next clamps at the end")

	d.PressKey('r')
	assert.Equal(t, 0, st.ctrl.Revealed())
}

func TestTUI_StepperIgnoresKeysWhileTyping(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	st := d.Lesson().stepper

	d.PressKey(':')
	require.True(t, d.CmdBarFocused())
	d.PressKey('a')
	d.PressSpace()
	assert.Equal(t, 0, st.ctrl.Revealed())
	d.PressEsc()

	d.Paste("a")
	assert.Equal(t, 0, st.ctrl.Revealed(), "pasted text is not a shortcut")

	d.PressKey('a')
	assert.Equal(t, 3, st.ctrl.Revealed())
}

func TestTUI_TabSwitchResetsCursor(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	d.PressKey('a')
	require.Equal(t, 3, d.Lesson().stepper.ctrl.Revealed())

	d.PressKey('1')
	d.PressKey('4')
	assert.Equal(t, 0, d.Lesson().stepper.ctrl.Revealed())
}

func TestTUI_ReturningToStepsTabStartsOver(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	d.PressRight()
	d.PressRight()
	require.Equal(t, 2, d.Lesson().stepper.ctrl.Revealed())

	d.PressKey('2')
	d.PressKey('4')
	assert.Equal(t, 0, d.Lesson().stepper.ctrl.Revealed())
	assert.Contains(t, d.View(), "3 more…")
}

func TestTUI_StepperViewLeavesScrollAlone(t *testing.T) {
	_, d := openSampleLesson(t)
	d.Send(tea.WindowSizeMsg{Width: 80, Height: 12})
	d.PressKey('4')
	d.PressKey('a')
	st := d.Lesson().stepper
	for range 50 {
		d.PressDown()
	}
	assert.LessOrEqual(t, st.scroll, max(0, st.contentLines()-st.bodyHeight()), "down stops at the last line")

	before := st.scroll
	_ = st.View()
	_ = st.View()
	assert.Equal(t, before, st.scroll)
}

func TestTUI_StepperButtons(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	st := d.Lesson().stepper

	d.ClickStepButton("◀ Prev")
	assert.Equal(t, 0, st.ctrl.Revealed(), "prev is disabled at zero")

	d.ClickStepButton("Next ▶")
	assert.Equal(t, 1, st.ctrl.Revealed())

	d.ClickStepButton("Show all")
	assert.Equal(t, 3, st.ctrl.Revealed())

	d.ClickStepButton("Reset")
	assert.Equal(t, 0, st.ctrl.Revealed())

	// A click below the button row does nothing.
	d.Click(1, headerHeight+lessonTabLines+3)
	assert.Equal(t, 0, st.ctrl.Revealed())
}

func TestTUI_StepperSwipe(t *testing.T) {
	_, d := openSampleLesson(t)
	d.PressKey('4')
	st := d.Lesson().stepper
	y := headerHeight + lessonTabLines + 6

	d.Drag(60, y, 40, y) // leftward, 160px
	assert.Equal(t, 1, st.ctrl.Revealed())
	d.Drag(60, y, 40, y)
	assert.Equal(t, 2, st.ctrl.Revealed())

	d.Drag(40, y, 60, y) // rightward
	assert.Equal(t, 1, st.ctrl.Revealed())

	d.Drag(60, y, 57, y) // too short
	assert.Equal(t, 1, st.ctrl.Revealed())

	d.Drag(60, y, 50, y+10) // mostly vertical
	assert.Equal(t, 1, st.ctrl.Revealed())

	d.MouseRelease(10, y) // release without a press
	assert.Equal(t, 1, st.ctrl.Revealed())
}

func TestTUI_LessonToolTabOpens(t *testing.T) {
	env, d := openSampleLesson(t)
	d.PressKey('3')
	require.Equal(t, domain.ViewInteractive, d.Lesson().activeTab())
	assert.Contains(t, d.View(), "Position–Velocity Explorer")

	d.PressEnter()
	assert.Equal(t, []string{"https://physics.example.edu/course/tools/position-velocity/"}, env.opener.URLs)
}

func TestTUI_OpenerFailureReported(t *testing.T) {
	env, d := openSampleLesson(t)
	env.opener.Err = errors.New("no browser")
	d.PressKey('3')
	d.PressKey('o')
	assert.Contains(t, d.LastOutput(), "no browser")
}

func TestTUI_LessonReload(t *testing.T) {
	env, d := openSampleLesson(t)
	d.PressKey('4')
	d.PressKey('a')
	before := d.Lesson().lesson.Revision

	d.Send(lessonChangedMsg{})
	lv := d.Lesson()
	assert.Greater(t, lv.lesson.Revision, before)
	assert.Equal(t, domain.ViewExamples, lv.activeTab(), "reload keeps the active tab")
	assert.Equal(t, 0, lv.stepper.ctrl.Revealed(), "new revision restarts the reveal")
	assert.Contains(t, d.View(), "reloaded")

	testutil.WriteFile(t, env.content, filepath.Join("lessons", "2-1", "lesson.json"), `{"id": "2-1", "views": {`)
	d.Send(lessonChangedMsg{})
	assert.Contains(t, d.View(), "reload failed")
	assert.Equal(t, domain.ViewExamples, d.Lesson().activeTab())
}

func TestTUI_LessonReloadWhileLockedKeepsOld(t *testing.T) {
	env, d := openSampleLesson(t)
	require.NoError(t, env.app.Courses.Relock(context.Background()))

	d.Send(lessonChangedMsg{})
	assert.Contains(t, d.View(), "reload failed")
	assert.Contains(t, d.View(), "Motion in One Dimension")
}

func TestTUI_BackHomeAndQuit(t *testing.T) {
	_, d := openSampleLesson(t)

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewPortal}, d.ViewStackIDs())
	assert.Empty(t, d.State().ActiveLessonID)

	d.Command("open 2-1")
	d.Command("back")
	assert.Equal(t, ViewPortal, d.ActiveViewID())

	d.Command("open 2-1")
	d.Command("home")
	assert.Equal(t, []ViewID{ViewPortal}, d.ViewStackIDs())

	d.Command("quit")
	assert.True(t, d.IsQuitting())
}

func TestTUI_OpenFromLessonReplacesIt(t *testing.T) {
	_, d := openSampleLesson(t)

	d.Command("open 2-1")
	assert.Equal(t, []ViewID{ViewPortal, ViewLesson}, d.ViewStackIDs())
	assert.Equal(t, "2-1", d.State().ActiveLessonID)
}

func TestTUI_HelpAndUnknownCommand(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)

	d.Command("help")
	assert.Contains(t, d.LastOutput(), "open <lesson>")

	d.Command("frobnicate")
	assert.Contains(t, d.LastOutput(), "Unknown command: frobnicate")

	d.Command("open")
	assert.Contains(t, d.LastOutput(), "usage: open <lesson>")

	d.Command("unlok 1-3")
	assert.Contains(t, d.LastOutput(), "did you mean unlock?")
}

func TestTUI_QuitKey(t *testing.T) {
	env := testApp(t)
	d := NewTestDriver(t, env.app)
	d.PressKey('q')
	assert.True(t, d.IsQuitting())
	assert.Empty(t, d.View())
}

func TestTUI_CommandSuggestionsIncludeTabs(t *testing.T) {
	_, d := openSampleLesson(t)
	m := d.appModel()
	m.cmdBar.input.SetValue("tab ex")
	m.cmdBar.updateSuggestions()
	assert.Contains(t, m.cmdBar.input.AvailableSuggestions(), "tab examples")

	m.cmdBar.input.SetValue("un")
	m.cmdBar.updateSuggestions()
	assert.Equal(t, []string{"unlock"}, m.cmdBar.input.AvailableSuggestions())
}

func TestTUI_LockedLessonErrorCarriesItem(t *testing.T) {
	env := testApp(t)
	_, err := env.app.Lessons.Load(context.Background(), "2-1")
	var locked *service.LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, "2-1", locked.ItemID)
}
