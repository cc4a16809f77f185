package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/lesson"
	"github.com/honphysics/portal/internal/repository"
)

type lessonService struct {
	contentDir string
	courses    repository.CourseRepo
	unlocks    repository.UnlockRepo
	visits     repository.VisitRepo
	observer   UseCaseObserver

	mu        sync.Mutex
	revisions map[string]int
}

func NewLessonService(
	contentDir string,
	courses repository.CourseRepo,
	unlocks repository.UnlockRepo,
	visits repository.VisitRepo,
	observers ...UseCaseObserver,
) LessonService {
	return &lessonService{
		contentDir: contentDir,
		courses:    courses,
		unlocks:    unlocks,
		visits:     visits,
		observer:   useCaseObserverOrNoop(observers),
		revisions:  make(map[string]int),
	}
}

// Load bumps the lesson revision on every call, so a reload after an edit
// binds fresh reveal sequences.
func (s *lessonService) Load(ctx context.Context, id string) (l *domain.Lesson, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"lesson": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "load-lesson",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err := s.checkAccess(ctx, id); err != nil {
		return nil, err
	}

	l, err = lesson.Load(s.contentDir, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.revisions[id]++
	l.Revision = s.revisions[id]
	s.mu.Unlock()

	fields["views"] = len(l.Views)
	fields["revision"] = l.Revision
	return l, nil
}

func (s *lessonService) checkAccess(ctx context.Context, id string) error {
	item, err := s.courses.FindItemByLesson(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !item.Locked() {
		return nil
	}
	ok, err := s.unlocks.IsUnlocked(ctx, domain.UnlockItem, item.ID)
	if err != nil {
		return err
	}
	if !ok {
		return &LockedError{LessonID: id, ItemID: item.ID}
	}
	return nil
}

func (s *lessonService) Open(ctx context.Context, lessonID string, view domain.ViewName) error {
	return s.visits.Record(ctx, &domain.Visit{
		ID:       uuid.New().String(),
		LessonID: lessonID,
		View:     view,
		OpenedAt: time.Now().UTC(),
	})
}

func (s *lessonService) Recent(ctx context.Context, limit int) ([]*domain.Visit, error) {
	return s.visits.ListRecent(ctx, limit)
}

func (s *lessonService) Dir(id string) string {
	return filepath.Dir(lesson.Path(s.contentDir, id))
}
