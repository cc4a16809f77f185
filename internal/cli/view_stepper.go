package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/reveal"
)

// stepButton is one clickable control in the stepper's button row.
type stepButton struct {
	label  string
	action reveal.Action
}

var stepButtons = []stepButton{
	{"◀ Prev", reveal.ActionPrev},
	{"Next ▶", reveal.ActionNext},
	{"Show all", reveal.ActionAll},
	{"Reset", reveal.ActionReset},
}

// Mouse presses that stay within this many pixels count as clicks.
const clickSlopPx = 4.0

// stepperView reveals the steps of one lesson view progressively. It is
// embedded in the lesson view for steps tabs. Row 0 of its output is the
// button row; mouse coordinates arrive relative to that origin.
type stepperView struct {
	state  *SharedState
	lesson *domain.Lesson
	name   domain.ViewName

	ctrl    *reveal.Controller
	gesture reveal.Gesture
	pressX  int
	pressY  int
	scroll  int
}

func newStepperView(state *SharedState, l *domain.Lesson, name domain.ViewName) *stepperView {
	v := &stepperView{state: state, ctrl: reveal.New("", nil)}
	v.bind(l, name)
	return v
}

// bind attaches a lesson view. The cursor resets whenever the sequence
// identity changes: another tab, another lesson or a reloaded revision.
func (v *stepperView) bind(l *domain.Lesson, name domain.ViewName) {
	v.lesson = l
	v.name = name
	var steps []string
	if lv := l.View(name); lv != nil {
		steps = lv.Steps
	}
	before := v.ctrl.Identity()
	v.ctrl.Bind(l.SequenceID(name), steps)
	if v.ctrl.Identity() != before {
		v.gesture.Cancel()
		v.scroll = 0
	}
}

// restart puts the cursor back at zero, as a freshly mounted stepper.
func (v *stepperView) restart() {
	v.ctrl.Reset()
	v.gesture.Cancel()
	v.scroll = 0
}

func (v *stepperView) ID() ViewID    { return ViewStepper }
func (v *stepperView) Title() string { return domain.TabLabel(v.name) }

func (v *stepperView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("right", " "), key.WithHelp("→/space", "next")),
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

func (v *stepperView) Init() tea.Cmd { return nil }

func (v *stepperView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.handleKey(msg)
	case tea.MouseMsg:
		v.handleMouse(msg)
	}
	return v, nil
}

// handleKey applies a reveal shortcut and reports whether the key was
// consumed.
func (v *stepperView) handleKey(msg tea.KeyMsg) bool {
	a, ok := reveal.KeyAction(msg.String(), reveal.KeyContext{
		InputFocused: v.state.CmdFocused,
		Composing:    msg.Paste,
	})
	if !ok {
		switch msg.String() {
		case "down", "j":
			v.scroll++
			v.clampScroll()
			return true
		case "up", "k":
			v.scroll = max(0, v.scroll-1)
			return true
		}
		return false
	}
	v.apply(a)
	return true
}

func (v *stepperView) apply(a reveal.Action) {
	if v.ctrl.Apply(a) && a == reveal.ActionNext {
		// Keep the newest step in view.
		v.scroll = max(0, v.contentLines()-v.bodyHeight())
	}
	v.clampScroll()
}

// clampScroll keeps the scroll offset within the rendered steps.
func (v *stepperView) clampScroll() {
	v.scroll = max(0, min(v.scroll, v.contentLines()-v.bodyHeight()))
}

func (v *stepperView) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		v.scroll++
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		v.scroll = max(0, v.scroll-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.pressX, v.pressY = msg.X, msg.Y
		v.gesture.Begin(v.touch(msg))
	case msg.Action == tea.MouseActionRelease:
		if !v.gesture.Active() {
			return
		}
		end := v.touch(msg)
		if a := v.gesture.End(end); a != reveal.ActionNone {
			v.apply(a)
			return
		}
		if v.isClick(msg) && msg.Y == 0 {
			if b, ok := buttonAt(msg.X); ok && v.ctrl.Enabled(b.action) {
				v.apply(b.action)
			}
		}
	}
}

func (v *stepperView) touch(msg tea.MouseMsg) reveal.Touch {
	app := v.state.App
	return reveal.Touch{
		X:  float64(msg.X) * app.CellWidthPx,
		Y:  float64(msg.Y) * app.CellHeightPx,
		At: app.now(),
	}
}

func (v *stepperView) isClick(msg tea.MouseMsg) bool {
	dx := float64(msg.X-v.pressX) * v.state.App.CellWidthPx
	dy := float64(msg.Y-v.pressY) * v.state.App.CellHeightPx
	return dx*dx+dy*dy <= clickSlopPx*clickSlopPx
}

// buttonAt maps a column of the button row to its button.
func buttonAt(x int) (stepButton, bool) {
	col := 0
	for i, b := range stepButtons {
		w := lipgloss.Width(buttonText(b))
		if x >= col && x < col+w {
			return b, true
		}
		col += w
		if i < len(stepButtons)-1 {
			col++
		}
	}
	return stepButton{}, false
}

func buttonText(b stepButton) string {
	return "[" + b.label + "]"
}

func (v *stepperView) renderButtons() string {
	parts := make([]string, len(stepButtons))
	for i, b := range stepButtons {
		text := buttonText(b)
		if v.ctrl.Enabled(b.action) {
			parts[i] = formatter.StyleYellow.Render(text)
		} else {
			parts[i] = formatter.Dim(text)
		}
	}
	return strings.Join(parts, " ")
}

func (v *stepperView) renderSteps() []string {
	if v.ctrl.Total() == 0 {
		return []string{formatter.Dim("No steps.")}
	}
	var lines []string
	for i, step := range v.ctrl.Visible() {
		if i > 0 {
			lines = append(lines, "")
		}
		r := formatter.RenderStep(reveal.Layout(step, v.state.App.Classifier), v.lesson.ImagePath)
		lines = append(lines, strings.Split(r, "\n")...)
	}
	if !v.ctrl.Done() {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, formatter.Dim(fmt.Sprintf("%d more…", v.ctrl.Total()-v.ctrl.Revealed())))
	}
	return lines
}

func (v *stepperView) contentLines() int {
	return len(v.renderSteps())
}

// bodyHeight is the space left for steps below the button and progress rows.
func (v *stepperView) bodyHeight() int {
	return max(1, v.state.ContentHeight()-4)
}

func (v *stepperView) View() string {
	head := v.renderButtons() + "\n" + formatter.RenderStepBar(v.ctrl.Revealed(), v.ctrl.Total(), 12)

	lines := v.renderSteps()
	if v.state.Height > 0 {
		h := v.bodyHeight()
		top := max(0, min(v.scroll, len(lines)-h))
		lines = lines[top:min(len(lines), top+h)]
	}
	return head + "\n\n" + strings.Join(lines, "\n")
}
