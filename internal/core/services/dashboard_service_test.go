package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/adapters/database/memory"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type DashboardServiceTestSuite struct {
	suite.Suite
	repos  *portsrepo.RepositoryProvider
	policy services.DashboardPolicy
}

func (s *DashboardServiceTestSuite) SetupTest() {
	s.repos = memory.NewRepositoryProvider()
	s.policy = services.DashboardPolicy{
		SmallCreditThreshold:   dec(5_000_000),
		ExcludedLowestAccounts: 2,
		FloorCashAtZero:        true,
		DefaultBranchName:      "Văn phòng không xác định",
	}
}

func (s *DashboardServiceTestSuite) service() portssvc.DashboardSvcFacade {
	return services.NewDashboardServiceImpl(s.repos.Transaction, s.repos.Customer, s.repos.BankAccount, s.repos.Branch, s.policy)
}

func (s *DashboardServiceTestSuite) addBranch(name string) domain.Branch {
	branch := domain.Branch{BranchID: uuid.NewString(), Name: name}
	s.Require().NoError(s.repos.Branch.SaveBranch(context.Background(), branch))
	return branch
}

func (s *DashboardServiceTestSuite) addCustomer(code, name, branchID string) domain.Customer {
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerCode: code,
		FullName:     name,
		BranchID:     branchID,
		IsActive:     true,
	}
	s.Require().NoError(s.repos.Customer.SaveCustomer(context.Background(), customer))
	return customer
}

func (s *DashboardServiceTestSuite) addAccount(name, branchID string) domain.BankAccount {
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		AccountName:   name,
		AccountNumber: uuid.NewString(),
		BranchID:      branchID,
		IsActive:      true,
	}
	s.Require().NoError(s.repos.BankAccount.SaveBankAccount(context.Background(), account))
	return account
}

func (s *DashboardServiceTestSuite) addTxn(typ domain.TransactionType, amount int64, day time.Time, customerID, accountID, branchID string) {
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Code:            "TXN-" + uuid.NewString()[:8],
		CustomerID:      customerID,
		BankAccountID:   accountID,
		BranchID:        branchID,
		TransactionType: typ,
		Amount:          dec(amount),
		TransactionDate: day,
	}
	s.Require().NoError(s.repos.Transaction.SaveTransaction(context.Background(), txn))
}

func (s *DashboardServiceTestSuite) TestHeadlineMetricsAndDeltas() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	account := s.addAccount("TK chính", branch.BranchID)
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)
	c2 := s.addCustomer("KH-0002", "Trần Thị Bình", branch.BranchID)

	// Previous window [Jan 1, Apr 1), current window [Apr 1, Jul 1).
	s.addTxn(domain.Charge, 1000, date(2024, 2, 10), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Refund, 100, date(2024, 3, 15), c1.CustomerID, account.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 400, date(2024, 4, 5), c1.CustomerID, account.BankAccountID, branch.BranchID)
	s.addTxn(domain.Charge, 600, date(2024, 5, 10), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Payment, 300, date(2024, 6, 1), c2.CustomerID, account.BankAccountID, branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.True(metrics.TotalReceivable.Equal(dec(-800)), "got %s", metrics.TotalReceivable)
	s.True(metrics.ReceivableDelta.Equal(dec(100)), "got %s", metrics.ReceivableDelta)

	s.Equal(2, metrics.ActiveCustomers)
	s.Equal(1, metrics.ActiveCustomersDelta)
	s.Equal(2, metrics.PaymentCount)
	s.Equal(2, metrics.PaymentCountDelta)
	s.Equal(1, metrics.ChargeCount)
	s.Equal(0, metrics.ChargeCountDelta)

	s.True(metrics.TotalIncome.Equal(dec(700)))
	s.True(metrics.IncomeDelta.Equal(dec(600)))
	s.True(metrics.TotalDebt.Equal(dec(600)))
	s.True(metrics.DebtDelta.Equal(dec(-400)))
}

// The receivable total as of the window end must equal the total at the
// window start plus the net flow of every cash-flow bucket.
func (s *DashboardServiceTestSuite) TestReceivableDeltaMatchesNetFlow() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)

	s.addTxn(domain.Charge, 1000, date(2024, 2, 10), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Payment, 400, date(2024, 4, 5), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Adjustment, -50, date(2024, 5, 2), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Refund, 120, date(2024, 6, 20), c1.CustomerID, "", branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	netFlowSum := decimal.Zero
	for _, point := range metrics.CashFlow {
		netFlowSum = netFlowSum.Add(point.NetFlow)
	}
	s.True(metrics.ReceivableDelta.Equal(netFlowSum),
		"delta %s, net flow sum %s", metrics.ReceivableDelta, netFlowSum)
	s.Len(metrics.CashFlow, 3)
}

func (s *DashboardServiceTestSuite) TestBankAccountsDropLowestAndFloor() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)
	accountA := s.addAccount("TK A", branch.BranchID)
	accountB := s.addAccount("TK B", branch.BranchID)
	s.addAccount("TK C", branch.BranchID)

	// Account A: refund before the window pushes the opening negative, which
	// the floor policy clamps to zero.
	s.addTxn(domain.Refund, 100, date(2024, 3, 15), c1.CustomerID, accountA.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 400, date(2024, 4, 5), c1.CustomerID, accountA.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 300, date(2024, 6, 1), c1.CustomerID, accountA.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 50, date(2024, 5, 20), c1.CustomerID, accountB.BankAccountID, branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	// Two lowest of three are dropped; only account A survives.
	s.Require().Len(metrics.BankAccounts, 1)
	got := metrics.BankAccounts[0]
	s.Equal(accountA.BankAccountID, got.BankAccountID)
	s.True(got.Balance.Equal(dec(700)), "got %s", got.Balance)

	s.Require().Len(got.Historical, 3)
	s.True(got.Historical[0].Balance.Equal(dec(400)))
	s.True(got.Historical[1].Balance.Equal(dec(400)))
	s.True(got.Historical[2].Balance.Equal(dec(700)))
}

func (s *DashboardServiceTestSuite) TestBankAccountsWithoutFloorGoNegative() {
	s.policy.FloorCashAtZero = false
	s.policy.ExcludedLowestAccounts = 0

	branch := s.addBranch("Chi nhánh Hà Nội")
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)
	account := s.addAccount("TK A", branch.BranchID)

	s.addTxn(domain.Refund, 100, date(2024, 3, 15), c1.CustomerID, account.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 400, date(2024, 4, 5), c1.CustomerID, account.BankAccountID, branch.BranchID)
	s.addTxn(domain.Payment, 300, date(2024, 6, 1), c1.CustomerID, account.BankAccountID, branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Require().Len(metrics.BankAccounts, 1)
	s.True(metrics.BankAccounts[0].Balance.Equal(dec(600)), "got %s", metrics.BankAccounts[0].Balance)
}

func (s *DashboardServiceTestSuite) TestTopCustomersOrderingAndThreshold() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	deepDebtor := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)
	lightDebtor := s.addCustomer("KH-0002", "Trần Thị Bình", branch.BranchID)
	smallCreditor := s.addCustomer("KH-0003", "Lê Minh Cường", branch.BranchID)
	bigCreditor := s.addCustomer("KH-0004", "Phạm Quốc Dung", branch.BranchID)
	s.addCustomer("KH-0005", "Hoàng Thu Em", branch.BranchID) // no transactions

	s.addTxn(domain.Charge, 9000, date(2024, 5, 1), deepDebtor.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Charge, 2000, date(2024, 5, 2), lightDebtor.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Payment, 3000, date(2024, 5, 3), smallCreditor.CustomerID, "", branch.BranchID)
	// Above the small-credit threshold, so not interesting.
	s.addTxn(domain.Payment, 6_000_000, date(2024, 5, 4), bigCreditor.CustomerID, "", branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Require().Len(metrics.TopCustomers, 3)
	s.Equal(deepDebtor.CustomerID, metrics.TopCustomers[0].CustomerID)
	s.Equal(lightDebtor.CustomerID, metrics.TopCustomers[1].CustomerID)
	s.Equal(smallCreditor.CustomerID, metrics.TopCustomers[2].CustomerID)
}

func (s *DashboardServiceTestSuite) TestTopCustomersCappedAtTen() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	for i := 0; i < 14; i++ {
		customer := s.addCustomer("KH-"+uuid.NewString()[:8], "Khách", branch.BranchID)
		s.addTxn(domain.Charge, int64(100*(i+1)), date(2024, 5, 1), customer.CustomerID, "", branch.BranchID)
	}

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)
	s.Len(metrics.TopCustomers, 10)
	// Deepest debt first.
	s.True(metrics.TopCustomers[0].Balance.Equal(dec(-1400)))
}

func (s *DashboardServiceTestSuite) TestBranchActivityIncludesZeroActivityBranches() {
	active := s.addBranch("Chi nhánh Hà Nội")
	idle := s.addBranch("Chi nhánh Đà Nẵng")
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", active.BranchID)

	s.addTxn(domain.Payment, 500, date(2024, 5, 1), c1.CustomerID, "", active.BranchID)
	s.addTxn(domain.Charge, 200, date(2024, 5, 2), c1.CustomerID, "", active.BranchID)
	// Branch nobody knows about.
	s.addTxn(domain.Charge, 50, date(2024, 5, 3), c1.CustomerID, "", "missing-branch")

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Require().Len(metrics.BranchActivity, 3)
	byName := make(map[string]domain.BranchActivity)
	for _, row := range metrics.BranchActivity {
		byName[row.BranchName] = row
	}

	s.True(byName[active.Name].Income.Equal(dec(500)))
	s.True(byName[active.Name].Debt.Equal(dec(200)))
	s.True(byName[idle.Name].Income.IsZero())
	s.True(byName[idle.Name].Debt.IsZero())
	s.True(byName["Văn phòng không xác định"].Debt.Equal(dec(50)))
	// The catch-all row is not a real branch and must not expose one's ID.
	s.Empty(byName["Văn phòng không xác định"].BranchID)
	// Most active branch first.
	s.Equal(active.Name, metrics.BranchActivity[0].BranchName)
}

func (s *DashboardServiceTestSuite) TestRecentTransactionsNewestFirst() {
	branch := s.addBranch("Chi nhánh Hà Nội")
	c1 := s.addCustomer("KH-0001", "Nguyễn Văn An", branch.BranchID)

	s.addTxn(domain.Payment, 100, date(2024, 4, 10), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Payment, 200, date(2024, 6, 10), c1.CustomerID, "", branch.BranchID)
	s.addTxn(domain.Payment, 300, date(2024, 5, 10), c1.CustomerID, "", branch.BranchID)

	metrics, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Require().Len(metrics.RecentTransactions, 3)
	s.True(metrics.RecentTransactions[0].Amount.Equal(dec(200)))
	s.True(metrics.RecentTransactions[1].Amount.Equal(dec(300)))
	s.True(metrics.RecentTransactions[2].Amount.Equal(dec(100)))
}

func (s *DashboardServiceTestSuite) TestInvalidParamsRejected() {
	_, err := s.service().GetDashboardMetrics(context.Background(), "", ledger.TimeRange("decade"), 3, date(2024, 6, 15))
	s.Error(err)

	_, err = s.service().GetDashboardMetrics(context.Background(), "", ledger.Month, 0, date(2024, 6, 15))
	s.Error(err)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
