package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/planpush/planpush/internal/domain"
)

var profileCounter atomic.Int64

// ProfileOption mutates a test profile before it is returned.
type ProfileOption func(*domain.Profile)

func WithActive() ProfileOption {
	return func(p *domain.Profile) {
		p.Active = true
	}
}

func WithToken(token string) ProfileOption {
	return func(p *domain.Profile) {
		p.Token = token
	}
}

// NewTestProfile builds a profile with a unique name derived from prefix.
func NewTestProfile(prefix string, opts ...ProfileOption) *domain.Profile {
	now := time.Now().UTC()
	p := &domain.Profile{
		ID:           uuid.New().String(),
		Name:         fmt.Sprintf("%s-%d", prefix, profileCounter.Add(1)),
		Organization: "contoso",
		Project:      "Webshop",
		Token:        "test-pat",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestMapping builds a type mapping for the given alias.
func NewTestMapping(alias, remoteType string, defaults ...domain.Field) *domain.TypeMapping {
	now := time.Now().UTC()
	return &domain.TypeMapping{
		ID:            uuid.New().String(),
		Alias:         alias,
		RemoteType:    remoteType,
		DefaultFields: defaults,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTestPlanTree builds a small plan tree: one suite holding one case with
// a single step.
func NewTestPlanTree(title string) *domain.SpecNode {
	return &domain.SpecNode{
		Kind:  domain.KindPlan,
		Title: title,
		Children: []domain.SpecNode{
			{
				Kind:  domain.KindSuite,
				Title: title + " suite",
				Children: []domain.SpecNode{
					{
						Kind:  domain.KindCase,
						Title: title + " case",
						Steps: []domain.Step{{Action: "Do the thing", Expected: "It worked"}},
					},
				},
			},
		},
	}
}
