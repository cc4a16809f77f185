package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/service"
)

// portalEntry is one selectable line of the portal: a course item or a tool.
type portalEntry struct {
	item     *domain.CourseItem
	tool     *domain.Tool
	unlocked bool
}

func (e portalEntry) locked() bool {
	if e.item != nil {
		return e.item.Locked() && !e.unlocked
	}
	return e.tool.Locked() && !e.unlocked
}

func (e portalEntry) name() string {
	if e.item != nil {
		return e.item.Name
	}
	return e.tool.Name
}

type catalogLoadedMsg struct {
	units   []*domain.CourseUnit
	entries map[string]portalEntry
	tools   []*domain.Tool
	recent  []*domain.Visit
	err     error
}

// portalView is the home view: units with their items, then the toolkit.
type portalView struct {
	state   *SharedState
	units   []*domain.CourseUnit
	tools   []*domain.Tool
	entries []portalEntry
	recent  []*domain.Visit
	cursor  int
	loading bool
	err     error
}

func newPortalView(state *SharedState) *portalView {
	return &portalView{state: state, loading: true}
}

func (v *portalView) ID() ViewID    { return ViewPortal }
func (v *portalView) Title() string { return "" }

func (v *portalView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

func (v *portalView) Init() tea.Cmd {
	return v.load()
}

func (v *portalView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		units, err := app.Courses.Units(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		tools, err := app.Tools.List(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		entries := make(map[string]portalEntry)
		for _, u := range units {
			for _, it := range u.Items {
				ok, err := app.Courses.IsUnlocked(ctx, it.ID)
				if err != nil {
					return catalogLoadedMsg{err: err}
				}
				entries["item:"+it.ID] = portalEntry{item: it, unlocked: ok}
			}
		}
		for _, t := range tools {
			ok, err := app.Tools.IsUnlocked(ctx, t.ID)
			if err != nil {
				return catalogLoadedMsg{err: err}
			}
			entries["tool:"+t.ID] = portalEntry{tool: t, unlocked: ok}
		}
		recent, err := app.Lessons.Recent(ctx, 5)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		return catalogLoadedMsg{units: units, tools: tools, entries: entries, recent: recent}
	}
}

func (v *portalView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.units, v.tools, v.recent = msg.units, msg.tools, msg.recent
		v.entries = v.entries[:0]
		for _, u := range msg.units {
			for _, it := range u.Items {
				v.entries = append(v.entries, msg.entries["item:"+it.ID])
			}
		}
		for _, t := range msg.tools {
			v.entries = append(v.entries, msg.entries["tool:"+t.ID])
		}
		v.cursor = max(0, min(v.cursor, len(v.entries)-1))
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.entries) {
				return v, activateEntry(v.state, v.entries[v.cursor])
			}
		}
	}
	return v, nil
}

// activateEntry opens an item or tool, asking for its password first when
// it is still locked.
func activateEntry(state *SharedState, e portalEntry) tea.Cmd {
	app := state.App
	var open tea.Cmd
	var unlock unlockFunc
	switch {
	case e.item != nil && e.item.LessonID != "":
		open = openLessonCmd(state, e.item.LessonID)
		id := e.item.ID
		unlock = func(ctx context.Context, pw string) error { return app.Courses.Unlock(ctx, id, pw) }
	case e.item != nil:
		open = pushView(newToolView(state, domain.ToolDescriptor{
			Label: e.item.Name, Href: e.item.Href, Launch: domain.LaunchNewTab,
		}))
		id := e.item.ID
		unlock = func(ctx context.Context, pw string) error { return app.Courses.Unlock(ctx, id, pw) }
	default:
		open = pushView(newToolView(state, domain.ToolDescriptor{
			Label: e.tool.Name, Href: e.tool.Href, Launch: domain.LaunchEmbed,
		}))
		id := e.tool.ID
		unlock = func(ctx context.Context, pw string) error { return app.Tools.Unlock(ctx, id, pw) }
	}
	if e.locked() {
		return passwordWizard(state, e.name(), unlock, open)
	}
	return open
}

// openLessonCmd loads a lesson and pushes its view. A lesson gated by a
// locked item prompts for the item's password first.
func openLessonCmd(state *SharedState, id string) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		ctx := context.Background()
		l, err := app.Lessons.Load(ctx, id)
		var locked *service.LockedError
		if errors.As(err, &locked) {
			itemID := locked.ItemID
			unlock := func(ctx context.Context, pw string) error { return app.Courses.Unlock(ctx, itemID, pw) }
			return passwordWizard(state, "lesson "+id, unlock, openLessonCmd(state, id))()
		}
		if err != nil {
			return cmdOutputMsg{output: formatter.Error(err)}
		}
		// A lesson opened from another lesson takes its place on the stack.
		replace := state.ActiveLessonID != ""
		lv := newLessonView(state, l)
		if replace {
			return replaceViewMsg{view: lv}
		}
		return pushViewMsg{view: lv}
	}
}

func (v *portalView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading…")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(v.err)
	}
	if len(v.units) == 0 && len(v.tools) == 0 {
		return "\n  " + formatter.Dim("No course imported. Run: portal course import <course.json>")
	}

	var b strings.Builder
	idx := 0
	for _, u := range v.units {
		b.WriteString("\n" + formatter.HeadingStyle(2).Render(u.Title) + "\n")
		for range u.Items {
			b.WriteString(v.renderEntry(idx, v.entries[idx]) + "\n")
			idx++
		}
	}
	if len(v.tools) > 0 {
		b.WriteString("\n" + formatter.Header("Toolkit") + "\n")
		for ; idx < len(v.entries); idx++ {
			b.WriteString(v.renderEntry(idx, v.entries[idx]) + "\n")
		}
	}
	if len(v.recent) > 0 {
		b.WriteString("\n" + formatter.Dim("Recently opened") + "\n")
		b.WriteString(formatter.FormatVisits(v.recent, v.state.App.now()))
	}
	return b.String()
}

func (v *portalView) renderEntry(idx int, e portalEntry) string {
	marker := "  "
	name := e.name()
	if idx == v.cursor {
		marker = formatter.StyleHeader.Render("▸ ")
		name = formatter.Bold(name)
	} else if e.locked() {
		name = formatter.Dim(name)
	}
	line := "  " + marker + name
	locked := (e.item != nil && e.item.Locked()) || (e.tool != nil && e.tool.Locked())
	if badge := formatter.LockBadge(locked, e.unlocked); badge != "" {
		line += "  " + badge
	}
	return line
}
