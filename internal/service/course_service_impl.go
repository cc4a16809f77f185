package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/lesson"
	"github.com/honphysics/portal/internal/repository"
)

type courseService struct {
	courses  repository.CourseRepo
	unlocks  repository.UnlockRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCourseService(
	courses repository.CourseRepo,
	unlocks repository.UnlockRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CourseService {
	return &courseService{
		courses:  courses,
		unlocks:  unlocks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *courseService) Import(ctx context.Context, path string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-catalog",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	catalog, err := lesson.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading course file: %w", err)
	}
	if errs := lesson.ValidateCatalog(catalog); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	units, tools := lesson.ConvertCatalog(catalog)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCourseRepo(tx).ReplaceCatalog(ctx, units); err != nil {
			return err
		}
		return repository.NewSQLiteToolRepo(tx).ReplaceAll(ctx, tools)
	})
	if err != nil {
		return nil, fmt.Errorf("storing catalog: %w", err)
	}

	result = &ImportResult{UnitCount: len(units), ToolCount: len(tools)}
	for _, u := range units {
		result.ItemCount += len(u.Items)
	}
	fields["units"] = result.UnitCount
	fields["items"] = result.ItemCount
	fields["tools"] = result.ToolCount
	return result, nil
}

func (s *courseService) Units(ctx context.Context) ([]*domain.CourseUnit, error) {
	return s.courses.ListUnits(ctx)
}

func (s *courseService) Item(ctx context.Context, id string) (*domain.CourseItem, error) {
	return s.courses.GetItem(ctx, id)
}

func (s *courseService) Unlock(ctx context.Context, itemID, password string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "unlock-item",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"item": itemID},
		})
	}()

	item, err := s.courses.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.Locked() {
		return nil
	}
	if !passwordMatches(item.Password, password) {
		return ErrWrongPassword
	}
	return s.unlocks.Unlock(ctx, domain.UnlockItem, item.ID, time.Now().UTC())
}

func (s *courseService) IsUnlocked(ctx context.Context, itemID string) (bool, error) {
	item, err := s.courses.GetItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if !item.Locked() {
		return true, nil
	}
	return s.unlocks.IsUnlocked(ctx, domain.UnlockItem, item.ID)
}

func (s *courseService) Relock(ctx context.Context) error {
	return s.unlocks.Clear(ctx)
}

func passwordMatches(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "course validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
