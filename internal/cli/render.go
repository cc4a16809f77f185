package cli

import (
	"fmt"
	"strings"

	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/launcher"
	"github.com/honphysics/portal/internal/lesson"
	"github.com/honphysics/portal/internal/reveal"
)

// pickView resolves a requested view name against a lesson. An empty name
// selects the first tab.
func pickView(l *domain.Lesson, name string) (domain.ViewName, error) {
	tabs := l.Tabs()
	if len(tabs) == 0 {
		return "", fmt.Errorf("lesson %s has no views", l.ID)
	}
	if name == "" {
		return tabs[0], nil
	}
	if l.View(domain.ViewName(name)) != nil {
		return domain.ViewName(name), nil
	}
	names := make([]string, len(tabs))
	for i, t := range tabs {
		names[i] = string(t)
	}
	return "", fmt.Errorf("lesson %s has no %q view (available: %s)", l.ID, name, strings.Join(names, ", "))
}

// renderStatic renders a non-interactive view body. Steps views are fully
// revealed.
func renderStatic(app *App, l *domain.Lesson, name domain.ViewName) string {
	v := l.View(name)
	if v == nil {
		return formatter.Dim(fmt.Sprintf("View %q not found.", name))
	}
	switch v.Kind {
	case domain.ViewKindLines, domain.ViewKindMarkdown:
		return formatter.RenderOutline(lesson.Outline(v, app.Classifier), l.ImagePath)
	case domain.ViewKindSteps:
		return renderSteps(app, l, v.Steps)
	case domain.ViewKindImages:
		return renderImages(l, v.Images)
	case domain.ViewKindTool:
		return formatter.FormatLaunchPlan(toolPlan(app, v.Tool))
	}
	return ""
}

func renderSteps(app *App, l *domain.Lesson, steps []string) string {
	if len(steps) == 0 {
		return formatter.Dim("No steps.")
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = formatter.RenderStep(reveal.Layout(s, app.Classifier), l.ImagePath)
	}
	return strings.Join(parts, "\n\n")
}

func renderImages(l *domain.Lesson, images []string) string {
	if len(images) == 0 {
		return formatter.Dim("No images.")
	}
	lines := make([]string, len(images))
	for i, img := range images {
		lines[i] = formatter.StyleBlue.Render("▣") + " " + l.ImagePath(img)
	}
	return strings.Join(lines, "\n")
}

func toolPlan(app *App, tool *domain.ToolDescriptor) launcher.LaunchPlan {
	if tool == nil {
		return launcher.Plan(domain.ToolDescriptor{}, app.PageURL)
	}
	return launcher.Plan(*tool, app.PageURL)
}

func lessonHeader(l *domain.Lesson, active domain.ViewName) string {
	return formatter.Header(l.Title) + "\n" + formatter.FormatTabs(l.Tabs(), active)
}
