package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/honphysics/portal/internal/cli/formatter"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, completion and history, which persists across
// sessions when App.HistoryPath is set.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	c := commandBar{input: ti, state: state}
	c.history = loadHistory(state.App.HistoryPath)
	c.historyIdx = len(c.history)
	return c
}

func (c *commandBar) Focus() {
	c.focused = true
	c.state.CmdFocused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.state.CmdFocused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(promptPlain) - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		c.Blur()
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.execute(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

const promptPlain = "portal > "

func (c *commandBar) promptPrefix() string {
	return formatter.StylePurple.Render("portal") + " " + formatter.Dim("❯") + " "
}

// execute runs one command line and returns the resulting navigation.
func (c *commandBar) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	arg := strings.Join(fields[1:], " ")

	bc, ok := lookupBarCommand(fields[0])
	if !ok {
		out := formatter.StyleRed.Render("Unknown command: ") + fields[0]
		if s := suggestBarCommand(fields[0]); s != "" {
			return outputCmd(out + formatter.Dim(fmt.Sprintf("  (did you mean %s?)", s)))
		}
		return outputCmd(out + formatter.Dim("  (try help)"))
	}
	if bc.NeedsArg && arg == "" {
		return outputCmd(formatter.StyleYellow.Render("usage: " + bc.Usage))
	}

	switch bc.Name {
	case "open":
		return openLessonCmd(c.state, arg)
	case "tab":
		return func() tea.Msg { return switchTabMsg{name: strings.ToLower(arg)} }
	case "unlock":
		return c.unlock(arg)
	case "back":
		return popView()
	case "home":
		return func() tea.Msg { return homeMsg{} }
	case "help":
		return outputCmd(formatter.Header("Commands") + "\n" + barCommandHelp())
	case "quit":
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

// unlock prompts for the password of a course item, or of a tool when no
// item has that id.
func (c *commandBar) unlock(id string) tea.Cmd {
	app := c.state.App
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := app.Courses.Item(ctx, id); err == nil {
			fn := func(ctx context.Context, pw string) error { return app.Courses.Unlock(ctx, id, pw) }
			return passwordWizard(c.state, id, fn, nil)()
		}
		if _, err := app.Tools.Get(ctx, id); err == nil {
			fn := func(ctx context.Context, pw string) error { return app.Tools.Unlock(ctx, id, pw) }
			return passwordWizard(c.state, id, fn, nil)()
		}
		return cmdOutputMsg{output: formatter.StyleRed.Render("No item or tool with id ") + id}
	}
}

// homeMsg unwinds the view stack to the portal.
type homeMsg struct{}

func (c *commandBar) addHistory(line string) {
	if n := len(c.history); n == 0 || c.history[n-1] != line {
		c.history = append(c.history, line)
		appendHistory(c.state.App.HistoryPath, line)
	}
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	parts := strings.Fields(text)
	if len(parts) == 0 {
		c.input.SetSuggestions(nil)
		return
	}
	if len(parts) == 1 && !strings.HasSuffix(text, " ") {
		c.input.SetSuggestions(filterSuggestions(barCommandNames(), parts[0]))
		return
	}
	if strings.ToLower(parts[0]) == "tab" && len(parts) <= 2 {
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		var names []string
		for _, t := range c.state.ActiveTabs {
			names = append(names, string(t))
		}
		var out []string
		for _, s := range filterSuggestions(names, prefix) {
			out = append(out, "tab "+s)
		}
		c.input.SetSuggestions(out)
		return
	}
	c.input.SetSuggestions(nil)
}
