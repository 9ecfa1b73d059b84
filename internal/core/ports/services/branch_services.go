package services

import (
	"context"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
)

// BranchSvcFacade exposes branch reference data.
type BranchSvcFacade interface {
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
