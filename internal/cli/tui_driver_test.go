package cli

import (
	"testing"

	"github.com/honphysics/portal/internal/teatest"
)

// TestDriver wraps teatest.Driver with inspection methods for appModel
// internals (view stack, shared state, command bar focus) that the generic
// driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App. It constructs the
// appModel, sets terminal size, and drains Init() (which loads the portal
// synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App, initial ...func(*SharedState) View) *TestDriver {
	t.Helper()

	m := newAppModel(app, initial...)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Command focuses the command bar with ':', types the command, and presses
// Enter. The bar blurs itself on Enter, so subsequent keys route to the
// active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// ClickStepButton clicks the stepper button labelled label. The lesson view
// sits below the app header and its own tab strip.
func (d *TestDriver) ClickStepButton(label string) {
	d.T.Helper()
	col := 0
	for _, b := range stepButtons {
		if b.label == label {
			d.Click(col+1, headerHeight+lessonTabLines)
			return
		}
		col += len([]rune(buttonText(b))) + 1
	}
	d.T.Fatalf("no step button %q", label)
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// Portal returns the home view.
func (d *TestDriver) Portal() *portalView {
	d.T.Helper()
	return d.appModel().viewStack[0].(*portalView)
}

// Lesson returns the top view as a lesson view, failing the test otherwise.
func (d *TestDriver) Lesson() *lessonView {
	d.T.Helper()
	m := d.appModel()
	lv, ok := m.activeView().(*lessonView)
	if !ok {
		d.T.Fatalf("active view is %v, not a lesson", d.ActiveViewID())
	}
	return lv
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the last command output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
