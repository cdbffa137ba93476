package service

import (
	"context"

	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/publisher"
)

type ProfileService interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByName(ctx context.Context, name string) (*domain.Profile, error)
	GetActive(ctx context.Context) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Use(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

type MappingService interface {
	Set(ctx context.Context, m *domain.TypeMapping) error
	GetByAlias(ctx context.Context, alias string) (*domain.TypeMapping, error)
	List(ctx context.Context) ([]*domain.TypeMapping, error)
	Delete(ctx context.Context, alias string) error

	// Apply rewrites work-item type aliases in the tree to their remote
	// type names and merges in each mapping's default fields.
	Apply(ctx context.Context, root *domain.SpecNode) error
}

// PublishOptions tune a single publish run.
type PublishOptions struct {
	DryRun bool

	// Overrides for the resolved run context; empty values keep the
	// resolved defaults.
	AreaPath  string
	Iteration string
	CaseType  string

	// Progress receives per-node completion events during the run.
	Progress publisher.Observer
}

// PublishResult holds the outcome of a publish run.
type PublishResult struct {
	RecordID     string
	ProfileName  string
	Root         *domain.ResultNode // nil on dry runs and failures
	Preview      *domain.SpecNode   // populated on dry runs
	NodeCount    int
	CreatedCount int
}

type PublishService interface {
	// PublishFile loads, validates, and publishes a plan file.
	PublishFile(ctx context.Context, path string, opts PublishOptions) (*PublishResult, error)

	// PublishSchema publishes an already-loaded schema (e.g., a draft).
	PublishSchema(ctx context.Context, schema *importer.PlanSchema, opts PublishOptions) (*PublishResult, error)
}

type HistoryService interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.PublishRecord, error)
	GetByID(ctx context.Context, id string) (*domain.PublishRecord, error)
}
