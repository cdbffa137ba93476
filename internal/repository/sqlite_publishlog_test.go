package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublishLogRepo(t *testing.T) *SQLitePublishLogRepo {
	t.Helper()
	return NewSQLitePublishLogRepo(testutil.NewTestDB(t))
}

func testRecord(title string, startedAt time.Time) *domain.PublishRecord {
	return &domain.PublishRecord{
		ID:           uuid.New().String(),
		ProfileName:  "work",
		RootTitle:    title,
		RootKind:     domain.KindPlan,
		NodeCount:    5,
		CreatedCount: 5,
		Outcome:      domain.PublishSucceeded,
		StartedAt:    startedAt,
		FinishedAt:   startedAt.Add(2 * time.Second),
	}
}

func TestPublishLogRepo_RecordAndGet(t *testing.T) {
	repo := newPublishLogRepo(t)
	ctx := context.Background()

	rec := testRecord("Release 1.0", time.Now().UTC().Truncate(time.Second))
	rec.Outcome = domain.PublishFailed
	rec.ErrorText = "create suite \"Shipping\" failed (status 403): forbidden"
	rec.CreatedCount = 3
	require.NoError(t, repo.Record(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PublishFailed, got.Outcome)
	assert.Equal(t, rec.ErrorText, got.ErrorText)
	assert.Equal(t, 3, got.CreatedCount)
	assert.Equal(t, domain.KindPlan, got.RootKind)
	assert.True(t, got.StartedAt.Equal(rec.StartedAt))
}

func TestPublishLogRepo_GetByID_NotFound(t *testing.T) {
	repo := newPublishLogRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishLogRepo_ListRecent_OrderAndLimit(t *testing.T) {
	repo := newPublishLogRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := testRecord(fmt.Sprintf("Run %d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Record(ctx, rec))
	}

	records, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Run 3", records[0].RootTitle)
	assert.Equal(t, "Run 2", records[1].RootTitle)
	assert.Equal(t, "Run 1", records[2].RootTitle)
}
