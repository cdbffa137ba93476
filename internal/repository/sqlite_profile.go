package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/planpush/planpush/internal/db"
	"github.com/planpush/planpush/internal/domain"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo. The unit of work is
// used for the activate switch, which touches two rows atomically.
func NewSQLiteProfileRepo(database *sql.DB, uow db.UnitOfWork) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: database, uow: uow}
}

const profileColumns = `id, name, organization, project, token, area_path, iteration, active, created_at, updated_at`

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Organization,
		p.Project,
		p.Token,
		p.AreaPath,
		p.Iteration,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE name = ?`
	return scanProfile(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteProfileRepo) GetActive(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE active = 1`
	return scanProfile(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET organization = ?, project = ?, token = ?, area_path = ?, iteration = ?, updated_at = ?
		WHERE name = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Organization, p.Project, p.Token, p.AreaPath, p.Iteration, nowUTC(), p.Name)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return requireRow(res)
}

// SetActive marks the named profile active and deactivates all others in
// one transaction, preserving the at-most-one-active invariant enforced by
// the partial unique index.
func (r *SQLiteProfileRepo) SetActive(ctx context.Context, name string) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET active = 0 WHERE active = 1`); err != nil {
			return fmt.Errorf("deactivating profiles: %w", err)
		}
		res, err := tx.ExecContext(ctx, `UPDATE profiles SET active = 1, updated_at = ? WHERE name = ?`, nowUTC(), name)
		if err != nil {
			return fmt.Errorf("activating profile %q: %w", name, err)
		}
		return requireRow(res)
	})
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	p, err := scanProfileRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func scanProfileRow(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var active int
	var createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.Name, &p.Organization, &p.Project, &p.Token,
		&p.AreaPath, &p.Iteration, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.Active = intToBool(active)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}
