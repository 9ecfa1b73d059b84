package domain

// Branch is static reference data used to group customers, bank accounts and
// transactions for display.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	AuditFields
}
