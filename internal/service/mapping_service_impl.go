package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/repository"
)

type mappingService struct {
	mappings repository.TypeMappingRepo
}

func NewMappingService(mappings repository.TypeMappingRepo) MappingService {
	return &mappingService{mappings: mappings}
}

func (s *mappingService) Set(ctx context.Context, m *domain.TypeMapping) error {
	m.Alias = strings.ToLower(strings.TrimSpace(m.Alias))
	if m.Alias == "" {
		return fmt.Errorf("mapping alias is required")
	}
	if strings.TrimSpace(m.RemoteType) == "" {
		return fmt.Errorf("mapping remote type is required")
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return s.mappings.Upsert(ctx, m)
}

func (s *mappingService) GetByAlias(ctx context.Context, alias string) (*domain.TypeMapping, error) {
	return s.mappings.GetByAlias(ctx, alias)
}

func (s *mappingService) List(ctx context.Context) ([]*domain.TypeMapping, error) {
	return s.mappings.List(ctx)
}

func (s *mappingService) Delete(ctx context.Context, alias string) error {
	return s.mappings.Delete(ctx, alias)
}

// Apply walks the tree and resolves every declared type through the stored
// mappings. Work items and cases both carry a type the publisher submits, so
// both kinds resolve. Unmapped types pass through untouched so exact remote
// type names keep working without a mapping.
func (s *mappingService) Apply(ctx context.Context, root *domain.SpecNode) error {
	if root == nil {
		return nil
	}
	// One lookup per distinct alias per run.
	cache := map[string]*domain.TypeMapping{}
	return s.applyNode(ctx, root, cache)
}

func (s *mappingService) applyNode(ctx context.Context, node *domain.SpecNode, cache map[string]*domain.TypeMapping) error {
	if node.Type != "" && (node.Kind == domain.KindWorkItem || node.Kind == domain.KindCase) {
		if err := s.applyMapping(ctx, node, cache); err != nil {
			return err
		}
	}
	for i := range node.Children {
		if err := s.applyNode(ctx, &node.Children[i], cache); err != nil {
			return err
		}
	}
	return nil
}

func (s *mappingService) applyMapping(ctx context.Context, node *domain.SpecNode, cache map[string]*domain.TypeMapping) error {
	key := strings.ToLower(node.Type)
	mapping, seen := cache[key]
	if !seen {
		var err error
		mapping, err = s.mappings.GetByAlias(ctx, key)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("resolving type %q: %w", node.Type, err)
			}
			mapping = nil
		}
		cache[key] = mapping
	}
	if mapping == nil {
		return nil
	}

	node.Type = mapping.RemoteType
	node.Fields = mergeDefaultFields(node.Fields, mapping.DefaultFields)
	return nil
}

// mergeDefaultFields appends mapping defaults the node does not already set.
// Explicit fields win; defaults keep their declared order.
func mergeDefaultFields(explicit, defaults []domain.Field) []domain.Field {
	if len(defaults) == 0 {
		return explicit
	}
	set := make(map[string]bool, len(explicit))
	for _, f := range explicit {
		set[strings.ToLower(f.Name)] = true
	}
	merged := explicit
	for _, d := range defaults {
		if !set[strings.ToLower(d.Name)] {
			merged = append(merged, d)
		}
	}
	return merged
}
