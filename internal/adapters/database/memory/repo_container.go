package memory

import (
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates a provider backed entirely by in-memory
// stores. Data does not survive a restart; the seed generator repopulates it
// on boot.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Transaction: NewTransactionRepository(),
		Customer:    NewCustomerRepository(),
		BankAccount: NewBankAccountRepository(),
		Branch:      NewBranchRepository(),
		User:        NewUserRepository(),
		Product:     NewProductRepository(),
	}
}
