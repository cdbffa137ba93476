package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Create(ctx context.Context, p *domain.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Organization == "" {
		return fmt.Errorf("profile organization is required")
	}
	if p.Project == "" {
		return fmt.Errorf("profile project is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.profiles.Create(ctx, p); err != nil {
		return err
	}

	// The first profile becomes active so a fresh install works without
	// an explicit "profile use".
	existing, err := s.profiles.List(ctx)
	if err == nil && len(existing) == 1 {
		return s.profiles.SetActive(ctx, p.Name)
	}
	return nil
}

func (s *profileService) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	return s.profiles.GetByName(ctx, name)
}

func (s *profileService) GetActive(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.GetActive(ctx)
}

func (s *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	return s.profiles.Update(ctx, p)
}

func (s *profileService) Use(ctx context.Context, name string) error {
	return s.profiles.SetActive(ctx, name)
}

func (s *profileService) Delete(ctx context.Context, name string) error {
	return s.profiles.Delete(ctx, name)
}
