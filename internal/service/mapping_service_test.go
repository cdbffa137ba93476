package service

import (
	"context"
	"testing"

	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/repository"
	"github.com/planpush/planpush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMappingService(t *testing.T) MappingService {
	t.Helper()
	return NewMappingService(repository.NewSQLiteTypeMappingRepo(testutil.NewTestDB(t)))
}

func TestMappingService_Set_NormalizesAlias(t *testing.T) {
	svc := newMappingService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, testutil.NewTestMapping("  Bug  ", "Bug")))

	got, err := svc.GetByAlias(ctx, "bug")
	require.NoError(t, err)
	assert.Equal(t, "bug", got.Alias)
}

func TestMappingService_Set_Validation(t *testing.T) {
	svc := newMappingService(t)
	ctx := context.Background()

	assert.Error(t, svc.Set(ctx, testutil.NewTestMapping(" ", "Bug")))
	assert.Error(t, svc.Set(ctx, testutil.NewTestMapping("bug", " ")))
}

func TestMappingService_Apply_RewritesTypesAndMergesDefaults(t *testing.T) {
	svc := newMappingService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, testutil.NewTestMapping("story", "User Story",
		domain.Field{Name: "priority", Value: "2"},
		domain.Field{Name: "tags", Value: "imported"},
	)))

	root := &domain.SpecNode{
		Kind:  domain.KindWorkItem,
		Title: "Release 1.0",
		Type:  "story",
		Fields: []domain.Field{
			{Name: "Priority", Value: "1"},
		},
		Children: []domain.SpecNode{
			{Kind: domain.KindWorkItem, Title: "Checkout rework", Type: "STORY"},
		},
	}

	require.NoError(t, svc.Apply(ctx, root))

	assert.Equal(t, "User Story", root.Type)
	// Explicit priority wins; the tags default is appended.
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "Priority", root.Fields[0].Name)
	assert.Equal(t, "1", root.Fields[0].Value)
	assert.Equal(t, "tags", root.Fields[1].Name)

	// Alias match is case-insensitive.
	assert.Equal(t, "User Story", root.Children[0].Type)
	require.Len(t, root.Children[0].Fields, 2)
}

func TestMappingService_Apply_UnmappedTypePassesThrough(t *testing.T) {
	svc := newMappingService(t)

	root := &domain.SpecNode{Kind: domain.KindWorkItem, Title: "T", Type: "Custom Type"}
	require.NoError(t, svc.Apply(context.Background(), root))
	assert.Equal(t, "Custom Type", root.Type)
	assert.Empty(t, root.Fields)
}

func TestMappingService_Apply_MapsCaseTypes(t *testing.T) {
	svc := newMappingService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, testutil.NewTestMapping("regression", "Regression Test Case")))

	// A case with an explicit type resolves like a work item; one without a
	// type stays empty so the run-level default applies at publish time.
	root := &domain.SpecNode{
		Kind:  domain.KindPlan,
		Title: "Plan",
		Children: []domain.SpecNode{
			{Kind: domain.KindSuite, Title: "S", Children: []domain.SpecNode{
				{Kind: domain.KindCase, Title: "C1", Type: "regression"},
				{Kind: domain.KindCase, Title: "C2"},
			}},
		},
	}
	require.NoError(t, svc.Apply(ctx, root))
	suite := root.Children[0]
	assert.Equal(t, "Regression Test Case", suite.Children[0].Type)
	assert.Empty(t, suite.Children[1].Type)
}
