package formatter

import (
	"fmt"
	"strings"
)

// HelpCategory groups command bar commands under one section header.
// Each command is a {usage, description} pair.
type HelpCategory struct {
	Title    string
	Commands [][2]string
}

// FormatCommandHelp renders the categorized command reference shown by the
// command bar's help command.
func FormatCommandHelp(cats []HelpCategory) string {
	var b strings.Builder
	for i, cat := range cats {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(" " + StyleHeader.Render(strings.ToUpper(cat.Title)) + "\n")
		for _, c := range cat.Commands {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				StyleGreen.Render(fmt.Sprintf("%-18s", c[0])),
				StyleDim.Render(c[1])))
		}
	}
	b.WriteString("\n" + StyleDim.Render("  ↑/↓ recall history, ctrl+n/ctrl+p cycle suggestions") + "\n")
	return b.String()
}
