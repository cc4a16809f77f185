package lesson

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/outline"
)

// Convert transforms a validated, resolved lesson file into a domain lesson.
// Call Validate and ResolveSources first.
func Convert(f *LessonFile) *domain.Lesson {
	l := &domain.Lesson{
		ID:         f.ID,
		Title:      firstNonEmpty(f.Title, f.ID),
		ImagesBase: f.ImagesBase,
		Views:      make(map[domain.ViewName]*domain.LessonView, len(f.Views)),
	}
	if l.ImagesBase == "" && f.Dir != "" {
		l.ImagesBase = filepath.ToSlash(f.Dir) + "/"
	}
	for _, name := range f.Order {
		l.Order = append(l.Order, domain.ViewName(name))
	}

	for name, v := range f.Views {
		if v == nil {
			continue
		}
		view := &domain.LessonView{
			Name:     domain.ViewName(name),
			Kind:     v.Kind(),
			Lines:    v.Lines,
			Steps:    v.Steps,
			Images:   v.Images,
			Markdown: v.Text,
		}
		if v.Tool != nil {
			d := domain.ToolDescriptor{
				Label:  v.Tool.Label,
				Href:   v.Tool.Target(),
				Launch: v.Tool.LaunchMode(),
				Height: firstNonEmpty(v.Tool.Height, v.Tool.IframeHeight),
			}.WithDefaults()
			view.Tool = &d
		}
		l.Views[view.Name] = view
	}
	return l
}

// Load reads, validates, resolves and converts the lesson with the given id.
func Load(root, id string) (*domain.Lesson, error) {
	f, err := LoadLessonFile(root, id)
	if err != nil {
		return nil, err
	}
	if errs := Validate(f); len(errs) > 0 {
		return nil, formatValidationErrors(id, errs)
	}
	if err := ResolveSources(f); err != nil {
		return nil, fmt.Errorf("loading lesson %s: %w", id, err)
	}
	return Convert(f), nil
}

// Outline returns the classified nodes of a lines or md view. Other kinds
// have no outline and return nil.
func Outline(v *domain.LessonView, c outline.Classifier) []outline.Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case domain.ViewKindLines:
		return c.ClassifyAll(v.Lines)
	case domain.ViewKindMarkdown:
		return outline.FromMarkdown([]byte(v.Markdown))
	}
	return nil
}

func formatValidationErrors(id string, errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "lesson %s validation failed (%d errors):", id, len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%s", b.String())
}

// firstNonEmpty returns the first of vals that is not "", for fields with
// synonyms in older lesson files.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
