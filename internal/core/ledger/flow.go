package ledger

import (
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Flow classifies a transaction amount into the inflow/outflow pair used for
// cash-flow charting:
//
//	payment, refund            -> inflow abs(amount)
//	charge                     -> outflow abs(amount)
//	adjustment, amount >= 0    -> inflow abs(amount)
//	adjustment, amount < 0     -> outflow abs(amount)
func Flow(t domain.TransactionType, amount decimal.Decimal) (inflow, outflow decimal.Decimal) {
	switch t {
	case domain.Payment, domain.Refund:
		return amount.Abs(), decimal.Zero
	case domain.Charge:
		return decimal.Zero, amount.Abs()
	case domain.Adjustment:
		if amount.IsNegative() {
			return decimal.Zero, amount.Abs()
		}
		return amount.Abs(), decimal.Zero
	}
	return decimal.Zero, decimal.Zero
}

// ReceivableEffect is the signed contribution of a transaction to the
// outstanding receivable balance: payments and refunds add the magnitude,
// charges subtract it, adjustments add their raw signed amount.
func ReceivableEffect(t domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case domain.Payment, domain.Refund:
		return amount.Abs()
	case domain.Charge:
		return amount.Abs().Neg()
	}
	// Adjustments (and anything that slipped past validation) apply as-is.
	return amount
}

// CashEffect is the signed contribution of a transaction to a bank account's
// cash balance. Charges only affect the receivable, never cash.
func CashEffect(t domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case domain.Payment:
		return amount.Abs()
	case domain.Refund:
		return amount.Abs().Neg()
	case domain.Adjustment:
		return amount
	}
	return decimal.Zero
}

// ReceivableBalance folds a transaction set into the outstanding receivable
// total. The result is a pure sum and therefore invariant to ordering.
func ReceivableBalance(txns []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txns {
		balance = balance.Add(ReceivableEffect(tx.TransactionType, tx.Amount))
	}
	return balance
}
