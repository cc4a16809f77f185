package service

import (
	"context"
	"time"

	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/repository"
)

type toolService struct {
	tools   repository.ToolRepo
	unlocks repository.UnlockRepo
}

func NewToolService(tools repository.ToolRepo, unlocks repository.UnlockRepo) ToolService {
	return &toolService{tools: tools, unlocks: unlocks}
}

func (s *toolService) List(ctx context.Context) ([]*domain.Tool, error) {
	return s.tools.List(ctx)
}

func (s *toolService) Get(ctx context.Context, id string) (*domain.Tool, error) {
	return s.tools.Get(ctx, id)
}

func (s *toolService) Unlock(ctx context.Context, toolID, password string) error {
	tool, err := s.tools.Get(ctx, toolID)
	if err != nil {
		return err
	}
	if !tool.Locked() {
		return nil
	}
	if !passwordMatches(tool.Password, password) {
		return ErrWrongPassword
	}
	return s.unlocks.Unlock(ctx, domain.UnlockTool, tool.ID, time.Now().UTC())
}

func (s *toolService) IsUnlocked(ctx context.Context, toolID string) (bool, error) {
	tool, err := s.tools.Get(ctx, toolID)
	if err != nil {
		return false, err
	}
	if !tool.Locked() {
		return true, nil
	}
	return s.unlocks.IsUnlocked(ctx, domain.UnlockTool, tool.ID)
}
