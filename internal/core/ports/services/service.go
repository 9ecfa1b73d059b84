package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Customer    CustomerSvcFacade
	BankAccount BankAccountSvcFacade
	Branch      BranchSvcFacade
	Dashboard   DashboardSvcFacade
	Ledger      LedgerSvcFacade
	User        UserSvcFacade
	Product     ProductSvcFacade
	Seed        SeedSvcFacade
}
