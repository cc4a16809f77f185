package service

import (
	"context"

	"github.com/honphysics/portal/internal/domain"
)

// ImportResult summarizes a catalog import.
type ImportResult struct {
	UnitCount int
	ItemCount int
	ToolCount int
}

type CourseService interface {
	Import(ctx context.Context, path string) (*ImportResult, error)
	Units(ctx context.Context) ([]*domain.CourseUnit, error)
	Item(ctx context.Context, id string) (*domain.CourseItem, error)
	// Unlock checks password against the item and remembers the unlock.
	// Returns ErrWrongPassword on mismatch.
	Unlock(ctx context.Context, itemID, password string) error
	IsUnlocked(ctx context.Context, itemID string) (bool, error)
	// Relock forgets every remembered unlock.
	Relock(ctx context.Context) error
}

type ToolService interface {
	List(ctx context.Context) ([]*domain.Tool, error)
	Get(ctx context.Context, id string) (*domain.Tool, error)
	Unlock(ctx context.Context, toolID, password string) error
	IsUnlocked(ctx context.Context, toolID string) (bool, error)
}

type LessonService interface {
	// Load reads a lesson from the content directory. Lessons linked from a
	// locked, not yet unlocked catalog item return ErrLocked.
	Load(ctx context.Context, id string) (*domain.Lesson, error)
	// Open records that a lesson tab was shown.
	Open(ctx context.Context, lessonID string, view domain.ViewName) error
	Recent(ctx context.Context, limit int) ([]*domain.Visit, error)
	// Dir is the directory holding a lesson's files.
	Dir(id string) string
}
