package ledger

import (
	"sort"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Bucket is one fixed-size period of aggregated cash flow.
type Bucket struct {
	PeriodStart time.Time
	Inflow      decimal.Decimal
	Outflow     decimal.Decimal
	NetFlow     decimal.Decimal
}

// AggregateCashFlow folds transactions into count contiguous period buckets
// ending at the period containing end. Every bucket is pre-populated, so the
// result always has exactly count entries in ascending date order even when
// no transaction matches; transactions outside the window are ignored.
func AggregateCashFlow(txns []domain.Transaction, r TimeRange, count int, end time.Time) []Bucket {
	starts := BuildPeriodStarts(r, count, end)
	if starts == nil {
		return nil
	}

	buckets := make([]Bucket, len(starts))
	index := make(map[string]int, len(starts))
	for i, start := range starts {
		buckets[i] = Bucket{
			PeriodStart: start,
			Inflow:      decimal.Zero,
			Outflow:     decimal.Zero,
			NetFlow:     decimal.Zero,
		}
		index[start.Format(dateKeyFormat)] = i
	}

	for _, tx := range txns {
		i, ok := index[DateKey(tx.TransactionDate, r)]
		if !ok {
			continue
		}
		inflow, outflow := Flow(tx.TransactionType, tx.Amount)
		buckets[i].Inflow = buckets[i].Inflow.Add(inflow)
		buckets[i].Outflow = buckets[i].Outflow.Add(outflow)
	}

	for i := range buckets {
		buckets[i].NetFlow = buckets[i].Inflow.Sub(buckets[i].Outflow)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})
	return buckets
}

// CashBefore sums the cash effects of all transactions dated strictly before
// cutoff. Used as the opening balance for a rollforward.
func CashBefore(txns []domain.Transaction, cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		if tx.TransactionDate.Before(cutoff) {
			total = total.Add(CashEffect(tx.TransactionType, tx.Amount))
		}
	}
	return total
}

// RollForwardCash produces the per-period balance series for one account:
// starting from opening, each period applies the cash effects of its
// transactions. When floorAtZero is set the balance is clamped to zero after
// the opening and after every step, since negative cash is not representable
// under that policy.
func RollForwardCash(txns []domain.Transaction, r TimeRange, count int, end time.Time, opening decimal.Decimal, floorAtZero bool) []domain.BalanceSnapshot {
	starts := BuildPeriodStarts(r, count, end)
	if starts == nil {
		return nil
	}

	deltas := make([]decimal.Decimal, len(starts))
	index := make(map[string]int, len(starts))
	for i, start := range starts {
		deltas[i] = decimal.Zero
		index[start.Format(dateKeyFormat)] = i
	}
	for _, tx := range txns {
		if i, ok := index[DateKey(tx.TransactionDate, r)]; ok {
			deltas[i] = deltas[i].Add(CashEffect(tx.TransactionType, tx.Amount))
		}
	}

	balance := opening
	if floorAtZero && balance.IsNegative() {
		balance = decimal.Zero
	}
	series := make([]domain.BalanceSnapshot, len(starts))
	for i, start := range starts {
		balance = balance.Add(deltas[i])
		if floorAtZero && balance.IsNegative() {
			balance = decimal.Zero
		}
		series[i] = domain.BalanceSnapshot{Date: start, Balance: balance}
	}
	return series
}
