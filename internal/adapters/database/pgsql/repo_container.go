package pgsql

import (
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates a provider backed by PostgreSQL.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Transaction: NewPgxTransactionRepository(pool),
		Customer:    NewPgxCustomerRepository(pool),
		BankAccount: NewPgxBankAccountRepository(pool),
		Branch:      NewPgxBranchRepository(pool),
		User:        NewPgxUserRepository(pool),
		Product:     NewPgxProductRepository(pool),
	}
}
