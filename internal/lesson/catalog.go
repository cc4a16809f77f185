package lesson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/honphysics/portal/internal/domain"
)

// CatalogFile is the JSON structure of course.json.
type CatalogFile struct {
	Units []UnitFile      `json:"units"`
	Tools []ToolEntryFile `json:"tools,omitempty"`
}

// UnitFile defines one course unit and its items.
type UnitFile struct {
	ID    int        `json:"id"`
	Title string     `json:"title"`
	Items []ItemFile `json:"items"`
}

// ItemFile links a unit to a lesson id or an external page.
type ItemFile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Href     string `json:"href,omitempty"`
	Lesson   string `json:"lesson,omitempty"`
	Password string `json:"password,omitempty"`
}

// ToolEntryFile defines one toolkit catalog entry.
type ToolEntryFile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Href     string `json:"href"`
	Password string `json:"password,omitempty"`
}

// CatalogPath returns the location of the course catalog under the content root.
func CatalogPath(root string) string {
	return filepath.Join(root, "course.json")
}

// LoadCatalog reads and parses a course catalog file.
func LoadCatalog(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c CatalogFile
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing course file: %w", err)
	}
	return &c, nil
}

// ValidateCatalog checks a course catalog before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalog(c *CatalogFile) []error {
	var errs []error

	unitIDs := make(map[int]bool)
	itemIDs := make(map[string]bool)
	for i, u := range c.Units {
		prefix := fmt.Sprintf("units[%d]", i)
		if u.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s.id must be positive", prefix))
		} else if unitIDs[u.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, u.ID))
		} else {
			unitIDs[u.ID] = true
		}
		if u.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		for j, it := range u.Items {
			itemPrefix := fmt.Sprintf("%s.items[%d]", prefix, j)
			if it.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", itemPrefix))
			}
			if it.Href == "" && it.Lesson == "" {
				errs = append(errs, fmt.Errorf("%s: href or lesson is required", itemPrefix))
			}
			id := itemID(u.ID, it)
			if itemIDs[id] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", itemPrefix, id))
			}
			itemIDs[id] = true
		}
	}

	toolIDs := make(map[string]bool)
	for i, t := range c.Tools {
		prefix := fmt.Sprintf("tools[%d]", i)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Href == "" {
			errs = append(errs, fmt.Errorf("%s.href is required", prefix))
		}
		id := toolID(t)
		if toolIDs[id] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, id))
		}
		toolIDs[id] = true
	}

	return errs
}

// ConvertCatalog transforms a validated catalog into domain objects.
// Items and tools without an explicit id get a stable name-derived id, so
// re-importing the same catalog keeps existing unlocks valid.
func ConvertCatalog(c *CatalogFile) ([]*domain.CourseUnit, []*domain.Tool) {
	units := make([]*domain.CourseUnit, 0, len(c.Units))
	for ui, u := range c.Units {
		unit := &domain.CourseUnit{ID: u.ID, Title: u.Title, OrderIndex: ui}
		for ii, it := range u.Items {
			unit.Items = append(unit.Items, &domain.CourseItem{
				ID:         itemID(u.ID, it),
				UnitID:     u.ID,
				Name:       it.Name,
				Href:       it.Href,
				LessonID:   it.Lesson,
				Password:   it.Password,
				OrderIndex: ii,
			})
		}
		units = append(units, unit)
	}

	tools := make([]*domain.Tool, 0, len(c.Tools))
	for _, t := range c.Tools {
		tools = append(tools, &domain.Tool{
			ID:       toolID(t),
			Name:     t.Name,
			Href:     t.Href,
			Password: t.Password,
		})
	}
	return units, tools
}

func itemID(unitID int, it ItemFile) string {
	if it.ID != "" {
		return it.ID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "unit/%d/%s", unitID, it.Name)).String()
}

func toolID(t ToolEntryFile) string {
	if t.ID != "" {
		return t.ID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("tool/"+t.Name)).String()
}
