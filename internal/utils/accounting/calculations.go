package accounting

import (
	"github.com/TidonAM/ODET/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalances folds a period's transactions into a balance per account.
// It is a pure function of its two inputs: every account in the input set
// appears in the result (zero when untouched), transaction order does not
// matter, and a transaction side referencing an account outside the set
// contributes nothing and creates no key.
//
// Sign convention per side:
//   - destination (positive side): credit account -= price, cash account += price
//   - source (negative side): credit account += price+fee, cash account -= price+fee
//
// The service fee is charged to the source side only; an incoming transfer
// to a credit account reduces the amount owed by the price alone. A transfer
// between a cash and a credit account therefore moves the asset down and
// the liability up in one pass.
func ComputeBalances(accounts []domain.Account, transactions []domain.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	credit := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		balances[acc.AccountID] = decimal.Zero
		credit[acc.AccountID] = acc.IsCredit
	}

	for _, txn := range transactions {
		price := txn.Price
		cost := txn.Price.Add(txn.ServiceFee)

		if id := txn.NegativeAccountID; id != "" {
			if bal, ok := balances[id]; ok {
				if credit[id] {
					balances[id] = bal.Add(cost)
				} else {
					balances[id] = bal.Sub(cost)
				}
			}
		}
		if id := txn.PositiveAccountID; id != "" {
			if bal, ok := balances[id]; ok {
				if credit[id] {
					balances[id] = bal.Sub(price)
				} else {
					balances[id] = bal.Add(price)
				}
			}
		}
	}
	return balances
}

// MinimumDue derives the minimum payment currently due on a credit account
// from its aggregated balance. Non-credit accounts always owe zero.
func MinimumDue(account domain.Account, balance decimal.Decimal) decimal.Decimal {
	if !account.IsCredit {
		return decimal.Zero
	}
	return balance.Mul(account.MinPaymentPercent).Div(decimal.NewFromInt(100))
}

// Summarize builds the full dashboard rollup for one period. TotalCash sums
// non-credit balances, TotalDebt sums credit balances, NetPosition is their
// difference. Balances rows keep the input account order.
func Summarize(resetID string, accounts []domain.Account, balances map[string]decimal.Decimal) domain.LedgerSummary {
	summary := domain.LedgerSummary{
		ResetID:     resetID,
		Balances:    make([]domain.AccountBalance, 0, len(accounts)),
		TotalCash:   decimal.Zero,
		TotalDebt:   decimal.Zero,
		NetPosition: decimal.Zero,
	}

	for _, acc := range accounts {
		bal := balances[acc.AccountID]
		row := domain.AccountBalance{
			AccountID: acc.AccountID,
			Title:     acc.Title,
			Color:     acc.Color,
			IsCredit:  acc.IsCredit,
			Balance:   bal,
		}
		if acc.IsCredit {
			row.DueDate = acc.DueDate
			row.MinimumDue = MinimumDue(acc, bal)
			summary.TotalDebt = summary.TotalDebt.Add(bal)
		} else {
			summary.TotalCash = summary.TotalCash.Add(bal)
		}
		summary.Balances = append(summary.Balances, row)
	}

	summary.NetPosition = summary.TotalCash.Sub(summary.TotalDebt)
	return summary
}
