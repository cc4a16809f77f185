package repository

import (
	"context"
	"time"

	"github.com/honphysics/portal/internal/domain"
)

type CourseRepo interface {
	// ReplaceCatalog swaps the stored units and items for the given set.
	ReplaceCatalog(ctx context.Context, units []*domain.CourseUnit) error
	ListUnits(ctx context.Context) ([]*domain.CourseUnit, error)
	GetItem(ctx context.Context, id string) (*domain.CourseItem, error)
	FindItemByLesson(ctx context.Context, lessonID string) (*domain.CourseItem, error)
}

type ToolRepo interface {
	Upsert(ctx context.Context, t *domain.Tool) error
	ReplaceAll(ctx context.Context, tools []*domain.Tool) error
	Get(ctx context.Context, id string) (*domain.Tool, error)
	List(ctx context.Context) ([]*domain.Tool, error)
}

type UnlockRepo interface {
	Unlock(ctx context.Context, scope domain.UnlockScope, targetID string, at time.Time) error
	IsUnlocked(ctx context.Context, scope domain.UnlockScope, targetID string) (bool, error)
	List(ctx context.Context) ([]domain.Unlock, error)
	Clear(ctx context.Context) error
}

type VisitRepo interface {
	Record(ctx context.Context, v *domain.Visit) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Visit, error)
}
