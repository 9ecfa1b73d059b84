package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
)

// branchServiceImpl implements the BranchSvcFacade interface.
type branchServiceImpl struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchServiceImpl creates a new branch service.
func NewBranchServiceImpl(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchServiceImpl{branchRepo: branchRepo}
}

var _ portssvc.BranchSvcFacade = (*branchServiceImpl)(nil)

func (s *branchServiceImpl) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch by ID",
				slog.String("branch_id", branchID))
		}
		return nil, err
	}
	return branch, nil
}

func (s *branchServiceImpl) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches")
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if branches == nil {
		return []domain.Branch{}, nil
	}
	return branches, nil
}
