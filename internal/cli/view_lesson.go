package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
)

// lessonTabLines is the number of lines the lesson view draws above the
// active tab's content: the tab strip and a status line.
const lessonTabLines = 2

type lessonLoadedMsg struct {
	lesson *domain.Lesson
	err    error
}

// lessonChangedMsg is sent when the watched lesson directory changes.
type lessonChangedMsg struct{}

// lessonView shows one lesson with a tab per view. Steps tabs embed a
// stepper; tool tabs show the launch plan.
type lessonView struct {
	state  *SharedState
	lesson *domain.Lesson
	tabs   []domain.ViewName
	active int

	vp      viewport.Model
	stepper *stepperView
	status  string

	// changes, when set, delivers live-reload notifications.
	changes <-chan struct{}
}

func newLessonView(state *SharedState, l *domain.Lesson) *lessonView {
	h := state.ContentHeight() - lessonTabLines
	if state.Height == 0 {
		h = 200
	}
	v := &lessonView{state: state, vp: viewport.New(state.Width, max(1, h))}
	v.vp.MouseWheelEnabled = true
	v.setLesson(l, "")
	return v
}

// watchChanges turns on live reload from ch.
func (v *lessonView) watchChanges(ch <-chan struct{}) *lessonView {
	v.changes = ch
	return v
}

// setLesson installs l, keeping the tab named keep when it still exists.
func (v *lessonView) setLesson(l *domain.Lesson, keep domain.ViewName) {
	v.lesson = l
	v.tabs = l.Tabs()
	v.active = 0
	for i, t := range v.tabs {
		if t == keep {
			v.active = i
		}
	}
	v.state.SetActiveLesson(l)
	v.refreshContent()
}

func (v *lessonView) activeTab() domain.ViewName {
	if len(v.tabs) == 0 {
		return ""
	}
	return v.tabs[v.active]
}

func (v *lessonView) activeView() *domain.LessonView {
	return v.lesson.View(v.activeTab())
}

// refreshContent rebinds the stepper or re-renders the viewport for the
// active tab.
func (v *lessonView) refreshContent() {
	lv := v.activeView()
	if lv != nil && lv.Kind == domain.ViewKindSteps {
		if v.stepper == nil {
			v.stepper = newStepperView(v.state, v.lesson, v.activeTab())
		} else {
			v.stepper.bind(v.lesson, v.activeTab())
		}
		return
	}
	v.vp.SetContent(renderStatic(v.state.App, v.lesson, v.activeTab()))
	v.vp.GotoTop()
}

func (v *lessonView) ID() ViewID    { return ViewLesson }
func (v *lessonView) Title() string { return v.lesson.Title }

func (v *lessonView) ShortHelp() []key.Binding {
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/1-9", "switch tab")),
	}
	if lv := v.activeView(); lv != nil {
		switch lv.Kind {
		case domain.ViewKindSteps:
			hints = append(hints, v.stepper.ShortHelp()...)
		case domain.ViewKindTool:
			hints = append(hints, key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open tool")))
		default:
			hints = append(hints, key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")))
		}
	}
	return hints
}

func (v *lessonView) Init() tea.Cmd {
	return tea.Batch(v.recordVisit(), v.waitForChange())
}

func (v *lessonView) recordVisit() tea.Cmd {
	app := v.state.App
	id, tab := v.lesson.ID, v.activeTab()
	return func() tea.Msg {
		if err := app.Lessons.Open(context.Background(), id, tab); err != nil {
			return cmdOutputMsg{output: formatter.Error(err)}
		}
		return nil
	}
}

func (v *lessonView) waitForChange() tea.Cmd {
	if v.changes == nil {
		return nil
	}
	ch := v.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return lessonChangedMsg{}
	}
}

func (v *lessonView) reload() tea.Cmd {
	app := v.state.App
	id := v.lesson.ID
	return func() tea.Msg {
		l, err := app.Lessons.Load(context.Background(), id)
		return lessonLoadedMsg{lesson: l, err: err}
	}
}

func (v *lessonView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = max(1, v.state.ContentHeight()-lessonTabLines)
		if v.stepper != nil {
			v.stepper.clampScroll()
		}
		return v, nil

	case lessonChangedMsg:
		return v, tea.Batch(v.reload(), v.waitForChange())

	case lessonLoadedMsg:
		if msg.err != nil {
			// Keep showing the last good revision while the file is mid-edit.
			v.status = formatter.StyleRed.Render("reload failed: ") + formatter.Dim(firstLine(msg.err.Error()))
			return v, nil
		}
		v.setLesson(msg.lesson, v.activeTab())
		v.status = formatter.StyleGreen.Render("reloaded")
		return v, nil

	case switchTabMsg:
		for i, t := range v.tabs {
			if string(t) == msg.name || strings.EqualFold(domain.TabLabel(t), msg.name) {
				return v, v.selectTab(i)
			}
		}
		return v, outputCmd(formatter.StyleYellow.Render("No tab named " + strconv.Quote(msg.name)))

	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseMsg:
		msg.Y -= lessonTabLines
		if lv := v.activeView(); lv != nil && lv.Kind == domain.ViewKindSteps {
			v.stepper.handleMouse(msg)
			return v, nil
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *lessonView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(v.tabs) == 0 {
		return v, nil
	}
	switch s := msg.String(); {
	case s == "tab":
		return v, v.selectTab((v.active + 1) % len(v.tabs))
	case s == "shift+tab":
		return v, v.selectTab((v.active - 1 + len(v.tabs)) % len(v.tabs))
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		if i := int(s[0] - '1'); i < len(v.tabs) {
			return v, v.selectTab(i)
		}
		return v, nil
	}

	lv := v.activeView()
	if lv == nil {
		return v, nil
	}
	switch lv.Kind {
	case domain.ViewKindSteps:
		v.stepper.handleKey(msg)
		return v, nil
	case domain.ViewKindTool:
		if msg.String() == "o" || msg.Type == tea.KeyEnter {
			return v, openURLCmd(v.state, toolPlan(v.state.App, lv.Tool).URL)
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// selectTab switches tabs. Switching always rebinds the stepper, so the
// reveal cursor restarts from zero.
func (v *lessonView) selectTab(i int) tea.Cmd {
	if len(v.tabs) == 0 || i == v.active {
		return nil
	}
	v.active = i
	v.status = ""
	v.refreshContent()
	// Leaving a tab unmounts its stepper, so coming back starts over.
	if lv := v.activeView(); lv != nil && lv.Kind == domain.ViewKindSteps {
		v.stepper.restart()
	}
	return v.recordVisit()
}

func (v *lessonView) View() string {
	tabs := formatter.FormatTabs(v.tabs, v.activeTab())
	var body string
	if lv := v.activeView(); lv != nil && lv.Kind == domain.ViewKindSteps {
		body = v.stepper.View()
	} else {
		body = v.vp.View()
	}
	return tabs + "\n" + v.status + "\n" + body
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
