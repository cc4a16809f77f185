package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/launcher"
)

// Unlocked reports whether a locked entry has been opened with its password.
type Unlocked func(id string) bool

// FormatCourse renders the catalog as a unit/item tree with lock badges.
func FormatCourse(units []*domain.CourseUnit, unlocked Unlocked) string {
	if len(units) == 0 {
		return Dim("No course imported. Run: portal course import <course.json>") + "\n"
	}
	var items []TreeItem
	for _, u := range units {
		items = append(items, TreeItem{Title: HeadingStyle(2).Render(u.Title)})
		for i, it := range u.Items {
			title := it.Name
			if it.LessonID != "" {
				title += " " + Dim("["+it.LessonID+"]")
			}
			isOpen := unlocked != nil && unlocked(it.ID)
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: i == len(u.Items)-1,
				Badge:  strings.TrimSpace(LockBadge(it.Locked(), isOpen) + " " + Dim(it.ID)),
				Muted:  it.Locked() && !isOpen,
			})
		}
	}
	return RenderTree(items)
}

// FormatTools renders the toolkit catalog as a table.
func FormatTools(tools []*domain.Tool, unlocked Unlocked) string {
	if len(tools) == 0 {
		return Dim("No tools in the catalog.") + "\n"
	}
	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		isOpen := unlocked != nil && unlocked(t.ID)
		rows = append(rows, []string{t.Name, Dim(t.Href), LockBadge(t.Locked(), isOpen), Dim(t.ID)})
	}
	return RenderTable([]string{"TOOL", "HREF", "", "ID"}, rows)
}

// FormatLaunchPlan renders a tool launch plan: the embed panel when
// embedding is allowed, otherwise the open action and any message.
func FormatLaunchPlan(p launcher.LaunchPlan) string {
	if !p.CanOpen() {
		return StyleYellow.Render(p.Message)
	}
	var b strings.Builder
	if p.Embed {
		body := fmt.Sprintf("%s\n%s", StyleBlue.Render(p.URL), Dim("height "+p.Height))
		b.WriteString(RenderBox(p.Label, body))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s  %s\n", Bold(p.Label), StyleBlue.Render(p.URL))
	}
	if p.Message != "" {
		b.WriteString(StyleYellow.Render(p.Message) + "\n")
	}
	b.WriteString(Dim("o: open in browser"))
	return b.String()
}

// FormatImportResult summarizes a catalog import.
func FormatImportResult(units, items, tools int) string {
	return StyleGreen.Render("✔") + fmt.Sprintf(" Imported %d units, %d items, %d tools", units, items, tools)
}

// FormatVisits renders recently opened lesson tabs.
func FormatVisits(visits []*domain.Visit, now time.Time) string {
	if len(visits) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{v.LessonID, domain.TabLabel(v.View), Dim(HumanTimestamp(v.OpenedAt, now))})
	}
	return RenderTable([]string{"LESSON", "TAB", "OPENED"}, rows)
}

// FormatTabs renders the tab strip with the active tab highlighted.
func FormatTabs(tabs []domain.ViewName, active domain.ViewName) string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, domain.TabLabel(t))
		if t == active {
			parts[i] = StyleHeader.Render("[" + label + "]")
		} else {
			parts[i] = Dim(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}
