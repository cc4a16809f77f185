// Package lesson loads lesson and course content files from the content
// directory and converts them into domain objects.
package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/honphysics/portal/internal/domain"
)

// ErrLessonNotFound is returned when no lesson file exists for an id.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonFile is the JSON structure of lessons/<id>/lesson.json.
type LessonFile struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	ImagesBase string              `json:"images_base,omitempty"`
	Order      []string            `json:"order,omitempty"`
	Views      map[string]*ViewFile `json:"views"`

	// Dir is the directory holding the lesson file; src paths resolve
	// against it.
	Dir string `json:"-"`
}

// ViewFile defines one tab of a lesson. The payload is inline or, when Src
// is set, read from a file next to the lesson file.
type ViewFile struct {
	Type   string    `json:"type,omitempty"`
	Src    string    `json:"src,omitempty"`
	Text   string    `json:"text,omitempty"`
	Lines  []string  `json:"lines,omitempty"`
	Steps  []string  `json:"steps,omitempty"`
	Images []string  `json:"images,omitempty"`
	Tool   *ToolFile `json:"tool,omitempty"`
}

// Kind returns the declared view type, or infers one from the payload.
func (v *ViewFile) Kind() domain.ViewKind {
	if v.Type != "" {
		return domain.ViewKind(v.Type)
	}
	switch {
	case v.Tool != nil:
		return domain.ViewKindTool
	case len(v.Steps) > 0:
		return domain.ViewKindSteps
	case len(v.Images) > 0:
		return domain.ViewKindImages
	case v.Text != "":
		return domain.ViewKindMarkdown
	}
	return domain.ViewKindLines
}

// ToolFile is a tool descriptor. It accepts either a bare URL string or an
// object; href, tool and url are synonyms, as are height and iframeHeight.
type ToolFile struct {
	Label        string `json:"label,omitempty"`
	Href         string `json:"href,omitempty"`
	Tool         string `json:"tool,omitempty"`
	URL          string `json:"url,omitempty"`
	Launch       string `json:"launch,omitempty"`
	Embed        *bool  `json:"embed,omitempty"`
	Height       string `json:"height,omitempty"`
	IframeHeight string `json:"iframeHeight,omitempty"`
}

func (t *ToolFile) UnmarshalJSON(data []byte) error {
	var href string
	if err := json.Unmarshal(data, &href); err == nil {
		*t = ToolFile{Href: href}
		return nil
	}
	type plain ToolFile
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = ToolFile(p)
	return nil
}

// Target returns the tool URL from whichever synonym is set.
func (t *ToolFile) Target() string {
	return firstNonEmpty(t.Href, t.Tool, t.URL)
}

// LaunchMode returns the explicit launch mode. A legacy "embed": false maps
// to new-tab; otherwise the result is empty and defaults apply later.
func (t *ToolFile) LaunchMode() domain.LaunchMode {
	if t.Launch != "" {
		return domain.LaunchMode(t.Launch)
	}
	if t.Embed != nil && !*t.Embed {
		return domain.LaunchNewTab
	}
	return ""
}

// Path returns the location of a lesson file under the content root.
func Path(root, id string) string {
	return filepath.Join(root, "lessons", id, "lesson.json")
}

// LoadLessonFile reads and parses the lesson file for id. Src references are
// not resolved; see ResolveSources.
func LoadLessonFile(root, id string) (*LessonFile, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	path := Path(root, id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var f LessonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lesson file: %w", err)
	}
	if f.ID == "" {
		f.ID = id
	}
	f.Dir = filepath.Dir(path)
	return &f, nil
}
