package repositories

// RepositoryProvider bundles every repository facade behind one injection
// point so a storage driver (pgsql or memory) can be swapped at startup.
type RepositoryProvider struct {
	Transaction TransactionRepositoryFacade
	Customer    CustomerRepositoryFacade
	BankAccount BankAccountRepositoryFacade
	Branch      BranchRepositoryFacade
	User        UserRepositoryFacade
	Product     ProductRepositoryFacade
}
