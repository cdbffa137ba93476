package repository

import (
	"context"

	"github.com/planpush/planpush/internal/domain"
)

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByName(ctx context.Context, name string) (*domain.Profile, error)
	GetActive(ctx context.Context) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	SetActive(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

type TypeMappingRepo interface {
	Upsert(ctx context.Context, m *domain.TypeMapping) error
	GetByAlias(ctx context.Context, alias string) (*domain.TypeMapping, error)
	List(ctx context.Context) ([]*domain.TypeMapping, error)
	Delete(ctx context.Context, alias string) error
}

type PublishLogRepo interface {
	Record(ctx context.Context, r *domain.PublishRecord) error
	GetByID(ctx context.Context, id string) (*domain.PublishRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PublishRecord, error)
}
