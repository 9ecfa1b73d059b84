package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/ledger"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	topCustomerLimit       = 10
	recentTransactionLimit = 20
)

// DashboardPolicy holds the display policy knobs applied when assembling the
// dashboard payload.
type DashboardPolicy struct {
	// SmallCreditThreshold caps the positive balances shown in the
	// top-customers list; larger creditors are considered settled accounts
	// rather than interesting balances.
	SmallCreditThreshold decimal.Decimal
	// ExcludedLowestAccounts drops the N lowest-balance bank accounts from
	// the dashboard card.
	ExcludedLowestAccounts int
	FloorCashAtZero        bool
	// DefaultBranchName labels activity whose branch is unknown.
	DefaultBranchName string
}

// dashboardServiceImpl implements the DashboardSvcFacade interface. Every
// figure is recomputed from the transaction history per request; nothing is
// cached or maintained incrementally.
type dashboardServiceImpl struct {
	BaseService
	txnRepo      portsrepo.TransactionReader
	customerRepo portsrepo.CustomerReader
	accountRepo  portsrepo.BankAccountReader
	branchRepo   portsrepo.BranchReader
	policy       DashboardPolicy
}

// NewDashboardServiceImpl creates a new dashboard service.
func NewDashboardServiceImpl(
	txnRepo portsrepo.TransactionReader,
	customerRepo portsrepo.CustomerReader,
	accountRepo portsrepo.BankAccountReader,
	branchRepo portsrepo.BranchReader,
	policy DashboardPolicy,
) portssvc.DashboardSvcFacade {
	return &dashboardServiceImpl{
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		branchRepo:   branchRepo,
		policy:       policy,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardServiceImpl)(nil)

func (s *dashboardServiceImpl) GetDashboardMetrics(ctx context.Context, branchID string, timeRange ledger.TimeRange, rangeCount int, asOf time.Time) (*domain.DashboardMetrics, error) {
	if !timeRange.IsValid() {
		return nil, fmt.Errorf("unknown time range %q: %w", timeRange, apperrors.ErrValidation)
	}
	if rangeCount < 1 {
		return nil, fmt.Errorf("range count must be at least 1: %w", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListAllTransactions(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for dashboard")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	window := ledger.CurrentWindow(timeRange, rangeCount, asOf)
	prevWindow := window.Previous(timeRange, rangeCount)

	var current, previous []domain.Transaction
	for _, tx := range txns {
		switch {
		case window.Contains(tx.TransactionDate):
			current = append(current, tx)
		case prevWindow.Contains(tx.TransactionDate):
			previous = append(previous, tx)
		}
	}

	metrics := &domain.DashboardMetrics{
		TimeRange:  string(timeRange),
		RangeCount: rangeCount,
		AsOf:       asOf,
	}

	// Receivable totals are cumulative as of each window's end, so the delta
	// is exactly the net effect of the current window.
	metrics.TotalReceivable = receivableAsOf(txns, window.End)
	metrics.ReceivableDelta = metrics.TotalReceivable.Sub(receivableAsOf(txns, window.Start))

	metrics.ActiveCustomers = countDistinctCustomers(current)
	metrics.ActiveCustomersDelta = metrics.ActiveCustomers - countDistinctCustomers(previous)

	currentPayments, currentCharges := countByType(current)
	prevPayments, prevCharges := countByType(previous)
	metrics.PaymentCount = currentPayments
	metrics.PaymentCountDelta = currentPayments - prevPayments
	metrics.ChargeCount = currentCharges
	metrics.ChargeCountDelta = currentCharges - prevCharges

	metrics.TotalIncome, metrics.TotalDebt = sumFlows(current)
	prevIncome, prevDebt := sumFlows(previous)
	metrics.IncomeDelta = metrics.TotalIncome.Sub(prevIncome)
	metrics.DebtDelta = metrics.TotalDebt.Sub(prevDebt)

	for _, b := range ledger.AggregateCashFlow(txns, timeRange, rangeCount, asOf) {
		metrics.CashFlow = append(metrics.CashFlow, domain.CashFlowPoint{
			Date:    b.PeriodStart,
			Inflow:  b.Inflow,
			Outflow: b.Outflow,
			NetFlow: b.NetFlow,
		})
	}

	accounts, err := s.buildBankAccounts(ctx, branchID, txns, timeRange, rangeCount, asOf)
	if err != nil {
		return nil, err
	}
	metrics.BankAccounts = accounts

	topCustomers, err := s.buildTopCustomers(ctx, txns)
	if err != nil {
		return nil, err
	}
	metrics.TopCustomers = topCustomers

	metrics.RecentTransactions = recentTransactions(current)

	branchActivity, err := s.buildBranchActivity(ctx, branchID, current)
	if err != nil {
		return nil, err
	}
	metrics.BranchActivity = branchActivity

	return metrics, nil
}

// buildBankAccounts rolls each account's cash forward over the window, then
// applies the display policy: sort ascending by closing balance and drop the
// N lowest accounts.
func (s *dashboardServiceImpl) buildBankAccounts(ctx context.Context, branchID string, txns []domain.Transaction, r ledger.TimeRange, count int, asOf time.Time) ([]domain.BankAccount, error) {
	accounts, err := s.accountRepo.ListBankAccounts(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts for dashboard")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}

	byAccount := make(map[string][]domain.Transaction)
	for _, tx := range txns {
		if tx.BankAccountID != "" {
			byAccount[tx.BankAccountID] = append(byAccount[tx.BankAccountID], tx)
		}
	}

	window := ledger.CurrentWindow(r, count, asOf)
	for i := range accounts {
		accountTxns := byAccount[accounts[i].BankAccountID]
		opening := ledger.CashBefore(accountTxns, window.Start)
		series := ledger.RollForwardCash(accountTxns, r, count, asOf, opening, s.policy.FloorCashAtZero)
		accounts[i].Historical = series
		if len(series) > 0 {
			accounts[i].Balance = series[len(series)-1].Balance
		} else {
			accounts[i].Balance = opening
		}
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Balance.LessThan(accounts[j].Balance)
	})
	if drop := s.policy.ExcludedLowestAccounts; drop > 0 {
		if drop >= len(accounts) {
			return []domain.BankAccount{}, nil
		}
		accounts = accounts[drop:]
	}
	return accounts, nil
}

// buildTopCustomers ranks customers by their full-history receivable balance:
// debtors first, deepest debt leading, then small creditors whose balance is
// within the threshold, largest leading.
func (s *dashboardServiceImpl) buildTopCustomers(ctx context.Context, txns []domain.Transaction) ([]domain.CustomerBalance, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers for dashboard")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(customers))
	for _, tx := range txns {
		effect := ledger.ReceivableEffect(tx.TransactionType, tx.Amount)
		balances[tx.CustomerID] = balances[tx.CustomerID].Add(effect)
	}

	var debtors, creditors []domain.CustomerBalance
	for _, c := range customers {
		balance, ok := balances[c.CustomerID]
		if !ok {
			continue
		}
		entry := domain.CustomerBalance{
			CustomerID:   c.CustomerID,
			CustomerCode: c.CustomerCode,
			FullName:     c.FullName,
			Balance:      balance,
		}
		switch {
		case balance.IsNegative():
			debtors = append(debtors, entry)
		case balance.IsPositive() && balance.LessThanOrEqual(s.policy.SmallCreditThreshold):
			creditors = append(creditors, entry)
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance.LessThan(debtors[j].Balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance.GreaterThan(creditors[j].Balance)
	})

	top := append(debtors, creditors...)
	if len(top) > topCustomerLimit {
		top = top[:topCustomerLimit]
	}
	return top, nil
}

// buildBranchActivity rolls income and debt up per branch over the current
// window. Every known branch appears even with zero activity; transactions
// with an unknown branch fall into a catch-all row.
func (s *dashboardServiceImpl) buildBranchActivity(ctx context.Context, branchID string, current []domain.Transaction) ([]domain.BranchActivity, error) {
	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches for dashboard")
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	rows := make([]domain.BranchActivity, 0, len(branches)+1)
	index := make(map[string]int, len(branches))
	for _, b := range branches {
		if branchID != "" && b.BranchID != branchID {
			continue
		}
		index[b.BranchID] = len(rows)
		rows = append(rows, domain.BranchActivity{
			BranchID:   b.BranchID,
			BranchName: b.Name,
			Income:     decimal.Zero,
			Debt:       decimal.Zero,
		})
	}

	unknownRow := -1
	for _, tx := range current {
		i, ok := index[tx.BranchID]
		if !ok {
			if unknownRow < 0 {
				unknownRow = len(rows)
				// No real branch backs this row, so it carries no ID.
				rows = append(rows, domain.BranchActivity{
					BranchName: s.policy.DefaultBranchName,
					Income:     decimal.Zero,
					Debt:       decimal.Zero,
				})
			}
			index[tx.BranchID] = unknownRow
			i = unknownRow
		}
		inflow, outflow := ledger.Flow(tx.TransactionType, tx.Amount)
		rows[i].Income = rows[i].Income.Add(inflow)
		rows[i].Debt = rows[i].Debt.Add(outflow)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Income.Add(rows[i].Debt).GreaterThan(rows[j].Income.Add(rows[j].Debt))
	})
	return rows, nil
}

// receivableAsOf sums receivable effects of all transactions dated strictly
// before cutoff.
func receivableAsOf(txns []domain.Transaction, cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		if tx.TransactionDate.Before(cutoff) {
			total = total.Add(ledger.ReceivableEffect(tx.TransactionType, tx.Amount))
		}
	}
	return total
}

func countDistinctCustomers(txns []domain.Transaction) int {
	seen := make(map[string]struct{})
	for _, tx := range txns {
		seen[tx.CustomerID] = struct{}{}
	}
	return len(seen)
}

func countByType(txns []domain.Transaction) (payments, charges int) {
	for _, tx := range txns {
		switch tx.TransactionType {
		case domain.Payment:
			payments++
		case domain.Charge:
			charges++
		}
	}
	return payments, charges
}

// sumFlows totals the window's inflow (payments, refunds, non-negative
// adjustments) and outflow (charges, negative adjustments) magnitudes.
func sumFlows(txns []domain.Transaction) (income, debt decimal.Decimal) {
	income, debt = decimal.Zero, decimal.Zero
	for _, tx := range txns {
		inflow, outflow := ledger.Flow(tx.TransactionType, tx.Amount)
		income = income.Add(inflow)
		debt = debt.Add(outflow)
	}
	return income, debt
}

// recentTransactions returns the newest transactions of the window, newest
// first, capped at the display limit.
func recentTransactions(current []domain.Transaction) []domain.Transaction {
	recent := make([]domain.Transaction, len(current))
	copy(recent, current)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].TransactionDate.Equal(recent[j].TransactionDate) {
			return recent[i].TransactionDate.After(recent[j].TransactionDate)
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	return recent
}
