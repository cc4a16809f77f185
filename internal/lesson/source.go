package lesson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/honphysics/portal/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxSourceReads bounds concurrent src file reads for one lesson.
const maxSourceReads = 8

// ResolveSources loads every view that names a src file and stores the data
// inline. Files are read concurrently; when several fail, the error for the
// first view in name order is returned.
func ResolveSources(f *LessonFile) error {
	names := sortedViewNames(f.Views)
	errs := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(maxSourceReads)
	for i, name := range names {
		v := f.Views[name]
		if v == nil || v.Src == "" {
			continue
		}
		g.Go(func() error {
			errs[i] = loadSource(f.Dir, name, v)
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func loadSource(dir, name string, v *ViewFile) error {
	if !filepath.IsLocal(v.Src) {
		return fmt.Errorf("views.%s.src: %q is outside the lesson directory", name, v.Src)
	}
	data, err := os.ReadFile(filepath.Join(dir, v.Src))
	if err != nil {
		return fmt.Errorf("views.%s.src: %w", name, err)
	}
	if err := decodeSource(v, data); err != nil {
		return fmt.Errorf("views.%s.src: parsing %s: %w", name, v.Src, err)
	}
	return nil
}

// decodeSource fills the payload of v from a src file. List views accept a
// bare JSON array or an object wrapping it ({"steps": [...]}).
func decodeSource(v *ViewFile, data []byte) error {
	switch v.Kind() {
	case domain.ViewKindMarkdown:
		var text string
		if err := json.Unmarshal(data, &text); err == nil {
			v.Text = text
		} else {
			v.Text = string(data)
		}
		return nil
	case domain.ViewKindTool:
		var t ToolFile
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		v.Tool = &t
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		switch v.Kind() {
		case domain.ViewKindSteps:
			v.Steps = list
		case domain.ViewKindImages:
			v.Images = list
		default:
			v.Lines = list
		}
		return nil
	}

	var wrapped struct {
		Lines  []string `json:"lines"`
		Steps  []string `json:"steps"`
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	v.Lines = wrapped.Lines
	v.Steps = wrapped.Steps
	v.Images = wrapped.Images
	return nil
}
