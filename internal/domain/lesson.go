package domain

import (
	"strconv"
	"strings"
)

// ViewName identifies one tab of a lesson.
type ViewName string

const (
	ViewOverview    ViewName = "overview"
	ViewNotes       ViewName = "notes"
	ViewInteractive ViewName = "interactive"
	ViewTool        ViewName = "tool" // legacy alias of interactive
	ViewExamples    ViewName = "examples"
	ViewPractice    ViewName = "practice"
	ViewImages      ViewName = "images"
)

// DefaultViewOrder is the tab order used when a lesson does not set one.
var DefaultViewOrder = []ViewName{
	ViewOverview, ViewNotes, ViewInteractive, ViewTool, ViewExamples, ViewPractice, ViewImages,
}

var tabLabels = map[ViewName]string{
	ViewOverview:    "Overview",
	ViewNotes:       "Notes",
	ViewInteractive: "Interactive",
	ViewTool:        "Interactive",
	ViewExamples:    "Examples",
	ViewPractice:    "Practice",
	ViewImages:      "Images",
}

// TabLabel returns the display label for a view; unknown names echo back.
func TabLabel(name ViewName) string {
	if l, ok := tabLabels[name]; ok {
		return l
	}
	return string(name)
}

// ViewKind is the content shape of a lesson view.
type ViewKind string

const (
	ViewKindLines    ViewKind = "lines"
	ViewKindSteps    ViewKind = "steps"
	ViewKindImages   ViewKind = "images"
	ViewKindTool     ViewKind = "tool"
	ViewKindMarkdown ViewKind = "md"
)

// ValidViewKinds is the canonical set of accepted view kinds.
var ValidViewKinds = map[ViewKind]bool{
	ViewKindLines: true, ViewKindSteps: true, ViewKindImages: true,
	ViewKindTool: true, ViewKindMarkdown: true,
}

// LessonView is the content of one tab. Exactly one payload field is
// meaningful, selected by Kind.
type LessonView struct {
	Name     ViewName
	Kind     ViewKind
	Lines    []string
	Steps    []string
	Images   []string
	Tool     *ToolDescriptor
	Markdown string
}

// Lesson is a named collection of views.
type Lesson struct {
	ID         string
	Title      string
	ImagesBase string
	Views      map[ViewName]*LessonView
	Order      []ViewName
	// Revision changes whenever the lesson is reloaded from disk.
	Revision int
}

// Tabs returns the view names present in the lesson, in display order.
func (l *Lesson) Tabs() []ViewName {
	order := l.Order
	if len(order) == 0 {
		order = DefaultViewOrder
	}
	seen := make(map[ViewName]bool, len(order))
	var tabs []ViewName
	for _, name := range order {
		if _, ok := l.Views[name]; ok && !seen[name] {
			tabs = append(tabs, name)
			seen[name] = true
		}
	}
	return tabs
}

// View returns the named view or nil.
func (l *Lesson) View(name ViewName) *LessonView {
	if l == nil {
		return nil
	}
	return l.Views[name]
}

// ImagePath resolves an image node's filename against the lesson base path.
// Absolute URLs are returned unchanged.
func (l *Lesson) ImagePath(name string) string {
	if strings.Contains(name, "://") {
		return name
	}
	return l.ImagesBase + name
}

// SequenceID identifies the bound sequence of a view for the reveal cursor:
// it changes when the lesson, the tab or the loaded revision changes.
func (l *Lesson) SequenceID(name ViewName) string {
	return l.ID + "/" + string(name) + "@" + strconv.Itoa(l.Revision)
}
