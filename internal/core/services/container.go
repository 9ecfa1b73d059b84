package services

import (
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/platform/config"
)

// NewServiceContainer wires every service against the chosen repository
// provider and the policy knobs from configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	policy := DashboardPolicy{
		SmallCreditThreshold:   cfg.SmallCreditThreshold,
		ExcludedLowestAccounts: cfg.ExcludedLowestAccounts,
		FloorCashAtZero:        cfg.FloorCashAtZero,
		DefaultBranchName:      cfg.DefaultBranchName,
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionServiceImpl(repos.Transaction, WithCustomerReader(repos.Customer)),
		Customer:    NewCustomerServiceImpl(repos.Customer, repos.Transaction),
		BankAccount: NewBankAccountServiceImpl(repos.BankAccount, repos.Transaction, cfg.FloorCashAtZero),
		Branch:      NewBranchServiceImpl(repos.Branch),
		Dashboard:   NewDashboardServiceImpl(repos.Transaction, repos.Customer, repos.BankAccount, repos.Branch, policy),
		Ledger:      NewLedgerServiceImpl(repos.Transaction),
		User:        NewUserServiceImpl(repos.User),
		Product:     NewProductServiceImpl(repos.Product),
		Seed:        NewSeedServiceImpl(repos, cfg.SeedRNG),
	}
}
