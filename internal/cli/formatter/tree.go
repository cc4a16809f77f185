package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Badge is rendered after the title, aligned across the tree.
	Badge string
	// Muted dims the title.
	Muted bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Level 0 items are roots and carry no connector.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = Dim(strings.Repeat(treePipe, item.Level-1))
			if item.IsLast {
				prefix += Dim(treeCorner)
			} else {
				prefix += Dim(treeBranch)
			}
		}
		title := item.Title
		if item.Muted {
			title = Dim(title)
		}
		contents[i] = prefix + title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Badge != "" {
			b.WriteString(strings.Repeat(" ", widest-lipgloss.Width(contents[i])+2))
			b.WriteString(item.Badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
