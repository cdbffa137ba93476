package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/planpush/planpush/internal/domain"
)

// SQLitePublishLogRepo implements PublishLogRepo using a SQLite database.
type SQLitePublishLogRepo struct {
	db *sql.DB
}

// NewSQLitePublishLogRepo creates a new SQLitePublishLogRepo.
func NewSQLitePublishLogRepo(db *sql.DB) *SQLitePublishLogRepo {
	return &SQLitePublishLogRepo{db: db}
}

const publishLogColumns = `id, profile_name, root_title, root_kind, node_count, created_count, outcome, error_text, started_at, finished_at`

func (r *SQLitePublishLogRepo) Record(ctx context.Context, rec *domain.PublishRecord) error {
	query := `INSERT INTO publish_log (` + publishLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ProfileName,
		rec.RootTitle,
		string(rec.RootKind),
		rec.NodeCount,
		rec.CreatedCount,
		string(rec.Outcome),
		rec.ErrorText,
		rec.StartedAt.Format(time.RFC3339),
		rec.FinishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting publish record: %w", err)
	}
	return nil
}

func (r *SQLitePublishLogRepo) GetByID(ctx context.Context, id string) (*domain.PublishRecord, error) {
	query := `SELECT ` + publishLogColumns + ` FROM publish_log WHERE id = ?`
	rec, err := scanPublishRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *SQLitePublishLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PublishRecord, error) {
	query := `SELECT ` + publishLogColumns + ` FROM publish_log ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing publish records: %w", err)
	}
	defer rows.Close()

	var records []*domain.PublishRecord
	for rows.Next() {
		rec, err := scanPublishRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publish records: %w", err)
	}
	return records, nil
}

func scanPublishRecord(row rowScanner) (*domain.PublishRecord, error) {
	var rec domain.PublishRecord
	var rootKind, outcome, startedAt, finishedAt string

	if err := row.Scan(&rec.ID, &rec.ProfileName, &rec.RootTitle, &rootKind,
		&rec.NodeCount, &rec.CreatedCount, &outcome, &rec.ErrorText,
		&startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning publish record: %w", err)
	}

	rec.RootKind = domain.NodeKind(rootKind)
	rec.Outcome = domain.PublishOutcome(outcome)
	rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	rec.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
	return &rec, nil
}
