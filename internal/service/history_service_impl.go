package service

import (
	"context"

	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/repository"
)

const defaultHistoryLimit = 20

type historyService struct {
	log repository.PublishLogRepo
}

func NewHistoryService(log repository.PublishLogRepo) HistoryService {
	return &historyService{log: log}
}

func (s *historyService) ListRecent(ctx context.Context, limit int) ([]*domain.PublishRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.log.ListRecent(ctx, limit)
}

func (s *historyService) GetByID(ctx context.Context, id string) (*domain.PublishRecord, error) {
	return s.log.GetByID(ctx, id)
}
