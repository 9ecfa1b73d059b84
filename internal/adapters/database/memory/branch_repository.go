package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
)

// BranchRepository is an in-memory implementation of the branch repository.
type BranchRepository struct {
	mu       sync.RWMutex
	branches map[string]domain.Branch
}

// NewBranchRepository creates a new in-memory branch repository.
func NewBranchRepository() *BranchRepository {
	return &BranchRepository{branches: make(map[string]domain.Branch)}
}

var _ portsrepo.BranchRepositoryFacade = (*BranchRepository)(nil)

func (r *BranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.branches[branch.BranchID]; exists {
		return fmt.Errorf("branch %s already exists: %w", branch.BranchID, apperrors.ErrDuplicate)
	}
	r.branches[branch.BranchID] = branch
	return nil
}

func (r *BranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	branch, exists := r.branches[branchID]
	if !exists {
		return nil, fmt.Errorf("branch %s: %w", branchID, apperrors.ErrNotFound)
	}
	return &branch, nil
}

func (r *BranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	r.mu.RLock()
	all := make([]domain.Branch, 0, len(r.branches))
	for _, branch := range r.branches {
		all = append(all, branch)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}
