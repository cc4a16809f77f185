package cli

import (
	"strings"

	"github.com/honphysics/portal/internal/cli/formatter"
)

// barCommand describes one command accepted by the TUI command bar.
type barCommand struct {
	Name     string
	Aliases  []string
	Usage    string
	Short    string
	Category string
	// NeedsArg commands print their usage when called bare.
	NeedsArg bool
}

var barCommands = []barCommand{
	{Name: "open", Aliases: []string{"o"}, Usage: "open <lesson>", Short: "open a lesson by id", Category: "Lessons", NeedsArg: true},
	{Name: "tab", Aliases: []string{"t"}, Usage: "tab <name>", Short: "switch the open lesson to a tab", Category: "Lessons", NeedsArg: true},
	{Name: "unlock", Usage: "unlock <id>", Short: "enter the password for an item or tool", Category: "Lessons", NeedsArg: true},
	{Name: "back", Aliases: []string{"b"}, Usage: "back", Short: "return to the previous view", Category: "Navigation"},
	{Name: "home", Usage: "home", Short: "return to the course portal", Category: "Navigation"},
	{Name: "help", Aliases: []string{"h"}, Usage: "help", Short: "show this list", Category: "Session"},
	{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Short: "leave the portal", Category: "Session"},
}

// lookupBarCommand resolves a name or alias, case-insensitively.
func lookupBarCommand(name string) (barCommand, bool) {
	name = strings.ToLower(name)
	for _, c := range barCommands {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return barCommand{}, false
}

func barCommandNames() []string {
	names := make([]string, len(barCommands))
	for i, c := range barCommands {
		names[i] = c.Name
	}
	return names
}

// suggestBarCommand returns the command sharing the longest prefix with
// name, or "" when none shares at least two characters.
func suggestBarCommand(name string) string {
	name = strings.ToLower(name)
	best, bestLen := "", 1
	for _, c := range barCommands {
		if n := commonPrefixLen(name, c.Name); n > bestLen {
			best, bestLen = c.Name, n
		}
	}
	return best
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// barCommandHelp renders the command list grouped by category, in table order.
func barCommandHelp() string {
	var cats []formatter.HelpCategory
	index := map[string]int{}
	for _, c := range barCommands {
		i, ok := index[c.Category]
		if !ok {
			i = len(cats)
			index[c.Category] = i
			cats = append(cats, formatter.HelpCategory{Title: c.Category})
		}
		cats[i].Commands = append(cats[i].Commands, [2]string{c.Usage, c.Short})
	}
	return formatter.FormatCommandHelp(cats)
}

// filterSuggestions returns the options that start with prefix, case-insensitively.
func filterSuggestions(options []string, prefix string) []string {
	var out []string
	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(o), strings.ToLower(prefix)) {
			out = append(out, o)
		}
	}
	return out
}
