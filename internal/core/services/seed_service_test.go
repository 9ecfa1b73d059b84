package services_test

import (
	"context"
	"testing"

	"github.com/congnodev/cashflow_mgmt_app/internal/adapters/database/memory"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type SeedServiceTestSuite struct {
	suite.Suite
	repos *portsrepo.RepositoryProvider
}

func (s *SeedServiceTestSuite) SetupTest() {
	s.repos = memory.NewRepositoryProvider()
}

func (s *SeedServiceTestSuite) TestSeedIfEmpty_PopulatesEmptyStore() {
	ctx := context.Background()
	seeded, err := services.NewSeedServiceImpl(s.repos, 42).SeedIfEmpty(ctx)

	s.Require().NoError(err)
	s.True(seeded)

	branches, err := s.repos.Branch.ListBranches(ctx)
	s.Require().NoError(err)
	s.Len(branches, 3)

	accounts, err := s.repos.BankAccount.ListBankAccounts(ctx, "")
	s.Require().NoError(err)
	s.Len(accounts, 4)

	customerCount, err := s.repos.Customer.CountCustomers(ctx)
	s.Require().NoError(err)
	s.Equal(int64(24), customerCount)

	products, err := s.repos.Product.ListProducts(ctx, portsrepo.ProductFilter{})
	s.Require().NoError(err)
	s.Len(products, 12)

	// Between 8 and 30 transactions per customer.
	txnCount, err := s.repos.Transaction.CountTransactions(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(txnCount, int64(24*8))
	s.LessOrEqual(txnCount, int64(24*30))

	// Every generated transaction must survive the same validation as manual
	// entries, and charges never carry a bank account.
	txns, err := s.repos.Transaction.ListAllTransactions(ctx, "")
	s.Require().NoError(err)
	for _, txn := range txns {
		s.Require().NoError(txn.Validate())
		if txn.TransactionType == domain.Charge {
			s.Empty(txn.BankAccountID)
		}
	}
}

func (s *SeedServiceTestSuite) TestSeedIfEmpty_SkipsNonEmptyStore() {
	ctx := context.Background()

	seeded, err := services.NewSeedServiceImpl(s.repos, 42).SeedIfEmpty(ctx)
	s.Require().NoError(err)
	s.True(seeded)

	countBefore, err := s.repos.Transaction.CountTransactions(ctx)
	s.Require().NoError(err)

	seeded, err = services.NewSeedServiceImpl(s.repos, 43).SeedIfEmpty(ctx)
	s.Require().NoError(err)
	s.False(seeded)

	countAfter, err := s.repos.Transaction.CountTransactions(ctx)
	s.Require().NoError(err)
	s.Equal(countBefore, countAfter)
}

func (s *SeedServiceTestSuite) TestSeedIsDeterministicPerSeed() {
	ctx := context.Background()

	first := memory.NewRepositoryProvider()
	_, err := services.NewSeedServiceImpl(first, 7).SeedIfEmpty(ctx)
	s.Require().NoError(err)
	second := memory.NewRepositoryProvider()
	_, err = services.NewSeedServiceImpl(second, 7).SeedIfEmpty(ctx)
	s.Require().NoError(err)

	firstCount, err := first.Transaction.CountTransactions(ctx)
	s.Require().NoError(err)
	secondCount, err := second.Transaction.CountTransactions(ctx)
	s.Require().NoError(err)
	s.Equal(firstCount, secondCount)
}

func TestSeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SeedServiceTestSuite))
}
