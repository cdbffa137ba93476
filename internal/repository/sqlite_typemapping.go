package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/planpush/planpush/internal/domain"
)

// SQLiteTypeMappingRepo implements TypeMappingRepo using a SQLite database.
// Default fields are stored as a JSON array so their order survives.
type SQLiteTypeMappingRepo struct {
	db *sql.DB
}

// NewSQLiteTypeMappingRepo creates a new SQLiteTypeMappingRepo.
func NewSQLiteTypeMappingRepo(db *sql.DB) *SQLiteTypeMappingRepo {
	return &SQLiteTypeMappingRepo{db: db}
}

type storedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *SQLiteTypeMappingRepo) Upsert(ctx context.Context, m *domain.TypeMapping) error {
	fields, err := encodeFields(m.DefaultFields)
	if err != nil {
		return err
	}

	query := `INSERT INTO type_mappings (id, alias, remote_type, default_fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(alias) DO UPDATE SET remote_type = excluded.remote_type,
			default_fields = excluded.default_fields, updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.Alias, m.RemoteType, fields,
		m.CreatedAt.Format(time.RFC3339), nowUTC())
	if err != nil {
		return fmt.Errorf("upserting type mapping: %w", err)
	}
	return nil
}

func (r *SQLiteTypeMappingRepo) GetByAlias(ctx context.Context, alias string) (*domain.TypeMapping, error) {
	query := `SELECT id, alias, remote_type, default_fields, created_at, updated_at
		FROM type_mappings WHERE alias = ? COLLATE NOCASE`
	m, err := scanTypeMapping(r.db.QueryRowContext(ctx, query, alias))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *SQLiteTypeMappingRepo) List(ctx context.Context) ([]*domain.TypeMapping, error) {
	query := `SELECT id, alias, remote_type, default_fields, created_at, updated_at
		FROM type_mappings ORDER BY alias`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing type mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*domain.TypeMapping
	for rows.Next() {
		m, err := scanTypeMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating type mappings: %w", err)
	}
	return mappings, nil
}

func (r *SQLiteTypeMappingRepo) Delete(ctx context.Context, alias string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM type_mappings WHERE alias = ? COLLATE NOCASE`, alias)
	if err != nil {
		return fmt.Errorf("deleting type mapping: %w", err)
	}
	return requireRow(res)
}

func encodeFields(fields []domain.Field) (string, error) {
	stored := make([]storedField, len(fields))
	for i, f := range fields {
		stored[i] = storedField{Name: f.Name, Value: f.Value}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encoding default fields: %w", err)
	}
	return string(data), nil
}

func scanTypeMapping(row rowScanner) (*domain.TypeMapping, error) {
	var m domain.TypeMapping
	var fieldsJSON, createdAt, updatedAt string

	if err := row.Scan(&m.ID, &m.Alias, &m.RemoteType, &fieldsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning type mapping: %w", err)
	}

	var stored []storedField
	if err := json.Unmarshal([]byte(fieldsJSON), &stored); err != nil {
		return nil, fmt.Errorf("decoding default fields: %w", err)
	}
	for _, f := range stored {
		m.DefaultFields = append(m.DefaultFields, domain.Field{Name: f.Name, Value: f.Value})
	}

	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &m, nil
}
