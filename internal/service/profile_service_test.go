package service

import (
	"context"
	"testing"

	"github.com/planpush/planpush/internal/db"
	"github.com/planpush/planpush/internal/repository"
	"github.com/planpush/planpush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) ProfileService {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProfileRepo(database, db.NewSQLiteUnitOfWork(database))
	return NewProfileService(repo)
}

func TestProfileService_Create_FirstProfileBecomesActive(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	p := testutil.NewTestProfile("work")
	require.NoError(t, svc.Create(ctx, p))

	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Name, active.Name)
}

func TestProfileService_Create_SecondProfileStaysInactive(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	first := testutil.NewTestProfile("work")
	second := testutil.NewTestProfile("personal")
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))

	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Name, active.Name)
}

func TestProfileService_Create_Validation(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	p := testutil.NewTestProfile("work")
	p.Name = "   "
	assert.Error(t, svc.Create(ctx, p))

	p = testutil.NewTestProfile("work")
	p.Organization = ""
	assert.Error(t, svc.Create(ctx, p))

	p = testutil.NewTestProfile("work")
	p.Project = ""
	assert.Error(t, svc.Create(ctx, p))
}

func TestProfileService_Use_SwitchesActive(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	a := testutil.NewTestProfile("a")
	b := testutil.NewTestProfile("b")
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	require.NoError(t, svc.Use(ctx, b.Name))
	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.Name, active.Name)

	assert.ErrorIs(t, svc.Use(ctx, "ghost"), repository.ErrNotFound)
}
