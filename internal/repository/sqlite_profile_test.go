package repository

import (
	"context"
	"testing"

	"github.com/planpush/planpush/internal/db"
	"github.com/planpush/planpush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileRepo(t *testing.T) *SQLiteProfileRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewSQLiteProfileRepo(database, db.NewSQLiteUnitOfWork(database))
}

func TestProfileRepo_CreateAndGet(t *testing.T) {
	repo := newProfileRepo(t)
	ctx := context.Background()

	p := testutil.NewTestProfile("work", testutil.WithToken("pat-1"))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByName(ctx, p.Name)
	require.NoError(t, err)
	assert.Equal(t, p.Organization, got.Organization)
	assert.Equal(t, "pat-1", got.Token)
	assert.False(t, got.Active)
}

func TestProfileRepo_GetByName_NotFound(t *testing.T) {
	repo := newProfileRepo(t)

	_, err := repo.GetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_SetActive_SwitchesAtomically(t *testing.T) {
	repo := newProfileRepo(t)
	ctx := context.Background()

	a := testutil.NewTestProfile("a")
	b := testutil.NewTestProfile("b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.SetActive(ctx, a.Name))
	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.Name, active.Name)

	require.NoError(t, repo.SetActive(ctx, b.Name))
	active, err = repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.Name, active.Name)

	// Exactly one profile may be active.
	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, p := range profiles {
		if p.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestProfileRepo_SetActive_UnknownName(t *testing.T) {
	repo := newProfileRepo(t)
	assert.ErrorIs(t, repo.SetActive(context.Background(), "ghost"), ErrNotFound)
}

func TestProfileRepo_UpdateAndDelete(t *testing.T) {
	repo := newProfileRepo(t)
	ctx := context.Background()

	p := testutil.NewTestProfile("work")
	require.NoError(t, repo.Create(ctx, p))

	p.Project = "Storefront"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByName(ctx, p.Name)
	require.NoError(t, err)
	assert.Equal(t, "Storefront", got.Project)

	require.NoError(t, repo.Delete(ctx, p.Name))
	_, err = repo.GetByName(ctx, p.Name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_GetActive_NoneActive(t *testing.T) {
	repo := newProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProfile("idle")))
	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
