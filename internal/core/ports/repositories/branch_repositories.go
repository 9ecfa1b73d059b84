package repositories

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// BranchReader provides read access to branches.
type BranchReader interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriter persists branches. Branches are seeded reference data, so
// there is no update or delete.
type BranchWriter interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
}

// BranchRepositoryFacade combines all branch repository capabilities.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
