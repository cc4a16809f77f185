package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/honphysics/portal/internal/domain"
)

var testItemCounter atomic.Int64

// Unit options
type UnitOption func(*domain.CourseUnit)

func WithItems(items ...*domain.CourseItem) UnitOption {
	return func(u *domain.CourseUnit) {
		for i, it := range items {
			it.UnitID = u.ID
			it.OrderIndex = i
		}
		u.Items = items
	}
}

func NewTestUnit(id int, title string, opts ...UnitOption) *domain.CourseUnit {
	u := &domain.CourseUnit{ID: id, Title: title, OrderIndex: id}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Item options
type ItemOption func(*domain.CourseItem)

func WithPassword(pw string) ItemOption {
	return func(it *domain.CourseItem) {
		it.Password = pw
	}
}

func WithLesson(id string) ItemOption {
	return func(it *domain.CourseItem) {
		it.LessonID = id
	}
}

func WithItemID(id string) ItemOption {
	return func(it *domain.CourseItem) {
		it.ID = id
	}
}

func NewTestItem(name string, opts ...ItemOption) *domain.CourseItem {
	n := testItemCounter.Add(1)
	it := &domain.CourseItem{
		ID:   uuid.New().String(),
		Name: name,
		Href: fmt.Sprintf("./units/item%d/index.html", n),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func NewTestTool(name, href string) *domain.Tool {
	return &domain.Tool{ID: uuid.New().String(), Name: name, Href: href}
}

// WriteFile writes content under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// SampleLessonJSON is a lesson with one view of each kind.
const SampleLessonJSON = `{
	"id": "2-1",
	"title": "Position and Velocity",
	"images_base": "img/",
	"views": {
		"overview": {"type": "md", "text": "# Motion in One Dimension\n\nPosition is measured from an **origin**."},
		"notes": {"type": "lines", "lines": [
			"I. Position",
			"A. Reference frames",
			"- an origin and a positive direction",
			"Displacement: Δx = x<sub>f</sub> − x<sub>i</sub>",
			"//image _ number-line.png"
		]},
		"examples": {"type": "steps", "steps": [
			"1. A runner moves from x = 2 m to x = 9 m.\nGiven: x_i = 2 m, x_f = 9 m\n- subtract initial from final\nΔx = 7 m.",
			"2. The runner returns to x = 4 m.\nΔx = 4 m − 9 m = −5 m.",
			"3. Total distance versus displacement\nDistance = 7 m + 5 m = 12 m."
		]},
		"interactive": {"type": "tool", "tool": {"href": "./tools/position-velocity/", "label": "Position–Velocity Explorer"}},
		"images": {"type": "images", "images": ["number-line.png", "runner.png"]}
	}
}`

// WriteSampleLesson writes SampleLessonJSON as lesson 2-1 under root.
func WriteSampleLesson(t *testing.T, root string) {
	t.Helper()
	WriteFile(t, root, filepath.Join("lessons", "2-1", "lesson.json"), SampleLessonJSON)
}

// SampleCatalogJSON is a two-unit course with a locked lesson item and tools.
const SampleCatalogJSON = `{
	"units": [
		{"id": 1, "title": "Unit 1 — The Science of Physics", "items": [
			{"id": "1-1", "name": "1.1 and 1.2 Intro to Physics", "href": "./units/1_1_2intro/index.html"},
			{"id": "1-3", "name": "1.3 Measurement", "href": "./units/1_3measurement/index.html", "password": "physics"}
		]},
		{"id": 2, "title": "Unit 2 — Motion in One Dimension", "items": [
			{"id": "2-1", "name": "2.1 Position and Velocity", "lesson": "2-1", "password": "physics"}
		]}
	],
	"tools": [
		{"id": "vector-adder", "name": "Vector Adder", "href": "./tools/vector-adder/"},
		{"id": "sigfig", "name": "Sig Fig Calculator", "href": "./tools/sigfig/", "password": "physics"}
	]
}`

// WriteSampleCatalog writes SampleCatalogJSON as course.json under root and
// returns its path.
func WriteSampleCatalog(t *testing.T, root string) string {
	t.Helper()
	return WriteFile(t, root, "course.json", SampleCatalogJSON)
}
