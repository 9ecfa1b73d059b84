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
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	repos   *portsrepo.RepositoryProvider
	service portssvc.LedgerSvcFacade
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.repos = memory.NewRepositoryProvider()
	s.service = services.NewLedgerServiceImpl(s.repos.Transaction)
}

func (s *LedgerServiceTestSuite) addTxn(code string, typ domain.TransactionType, amount int64, day time.Time, branchID string) {
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Code:            code,
		CustomerID:      "customer-1",
		BranchID:        branchID,
		TransactionType: typ,
		Amount:          dec(amount),
		TransactionDate: day,
	}
	s.Require().NoError(s.repos.Transaction.SaveTransaction(context.Background(), txn))
}

func (s *LedgerServiceTestSuite) TestRunningBalanceAndWindowBounds() {
	// Before the window: opening balance.
	s.addTxn("TXN-000001", domain.Charge, 1000, date(2024, 2, 10), "")
	s.addTxn("TXN-000002", domain.Payment, 300, date(2024, 3, 20), "")
	// Inside [Apr 1, Jul 1).
	s.addTxn("TXN-000003", domain.Payment, 400, date(2024, 4, 5), "")
	s.addTxn("TXN-000004", domain.Charge, 250, date(2024, 5, 10), "")
	s.addTxn("TXN-000005", domain.Adjustment, -50, date(2024, 6, 1), "")
	// At or after the window end: excluded.
	s.addTxn("TXN-000006", domain.Payment, 999, date(2024, 7, 1), "")

	result, err := s.service.GetReceivableLedger(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Equal(date(2024, 4, 1), result.From)
	s.Equal(date(2024, 7, 1), result.To)
	s.True(result.OpeningBalance.Equal(dec(-700)), "got %s", result.OpeningBalance)

	s.Require().Len(result.Rows, 3)
	s.Equal("TXN-000003", result.Rows[0].Code)
	s.Equal("TXN-000004", result.Rows[1].Code)
	s.Equal("TXN-000005", result.Rows[2].Code)

	s.True(result.Rows[0].Effect.Equal(dec(400)))
	s.True(result.Rows[0].RunningBalance.Equal(dec(-300)))
	s.True(result.Rows[1].Effect.Equal(dec(-250)))
	s.True(result.Rows[1].RunningBalance.Equal(dec(-550)))
	s.True(result.Rows[2].Effect.Equal(dec(-50)))
	s.True(result.Rows[2].RunningBalance.Equal(dec(-600)))

	s.True(result.ClosingBalance.Equal(dec(-600)))
}

func (s *LedgerServiceTestSuite) TestClosingEqualsOpeningWithoutRows() {
	s.addTxn("TXN-000001", domain.Charge, 500, date(2023, 11, 5), "")

	result, err := s.service.GetReceivableLedger(context.Background(), "", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Empty(result.Rows)
	s.True(result.OpeningBalance.Equal(dec(-500)))
	s.True(result.ClosingBalance.Equal(result.OpeningBalance))
}

func (s *LedgerServiceTestSuite) TestBranchFilter() {
	s.addTxn("TXN-000001", domain.Payment, 100, date(2024, 5, 1), "branch-a")
	s.addTxn("TXN-000002", domain.Payment, 200, date(2024, 5, 2), "branch-b")

	result, err := s.service.GetReceivableLedger(context.Background(), "branch-a", ledger.Month, 3, date(2024, 6, 15))
	s.Require().NoError(err)

	s.Require().Len(result.Rows, 1)
	s.Equal("TXN-000001", result.Rows[0].Code)
	s.Equal("branch-a", result.BranchID)
}

func (s *LedgerServiceTestSuite) TestInvalidParamsRejected() {
	_, err := s.service.GetReceivableLedger(context.Background(), "", ledger.TimeRange("fortnight"), 3, date(2024, 6, 15))
	s.Error(err)

	_, err = s.service.GetReceivableLedger(context.Background(), "", ledger.Week, 0, date(2024, 6, 15))
	s.Error(err)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
