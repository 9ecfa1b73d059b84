package dto

import "github.com/congnodev/cashflow_mgmt_app/internal/core/domain"

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
}

// ToBranchResponse converts a domain.Branch to its DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{BranchID: b.BranchID, Name: b.Name}
}

// ToListBranchResponse converts a slice of domain branches.
func ToListBranchResponse(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i := range branches {
		res[i] = ToBranchResponse(&branches[i])
	}
	return res
}
