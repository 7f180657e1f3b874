package core

import "github.com/shopspring/decimal"

// Totals is the aggregate card row shown for a record sequence: nominal
// spend, open balance, and set-aside funds.
type Totals struct {
	Spend    decimal.Decimal
	Pending  decimal.Decimal
	SetAside decimal.Decimal
}

// TotalSpend sums the nominal amount of fixed and extra expenses.
func TotalSpend(items []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range items {
		if e.Category == CategoryFixed || e.Category == CategoryExtra {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// TotalPending sums the open balance of fixed and extra expenses.
// Set-aside entries never contribute: they are settled by construction.
func TotalPending(items []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range items {
		if e.Category == CategoryFixed || e.Category == CategoryExtra {
			sum = sum.Add(e.Amount.Sub(e.AmountPaid))
		}
	}
	return sum
}

// TotalSetAside sums the nominal amount of set-aside entries.
func TotalSetAside(items []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range items {
		if e.Category == CategorySetAside {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// Summarize computes all three sums over an arbitrary record sequence.
// Zero for an empty sequence.
func Summarize(items []Expense) Totals {
	return Totals{
		Spend:    TotalSpend(items),
		Pending:  TotalPending(items),
		SetAside: TotalSetAside(items),
	}
}
