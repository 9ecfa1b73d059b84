package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBranchRepository persists branches in PostgreSQL.
type PgxBranchRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBranchRepository creates a new repository for branch data.
func NewPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{pool: pool}
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		branch.BranchID,
		branch.Name,
		branch.CreatedAt,
		branch.CreatedBy,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("branch %s: %w", branch.BranchID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save branch %s: %w", branch.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE branch_id = $1;
	`
	var branch domain.Branch
	err := r.pool.QueryRow(ctx, query, branchID).Scan(
		&branch.BranchID,
		&branch.Name,
		&branch.CreatedAt,
		&branch.CreatedBy,
		&branch.LastUpdatedAt,
		&branch.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}
	return &branch, nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT branch_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(
			&branch.BranchID,
			&branch.Name,
			&branch.CreatedAt,
			&branch.CreatedBy,
			&branch.LastUpdatedAt,
			&branch.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branch rows: %w", err)
	}
	return branches, nil
}
