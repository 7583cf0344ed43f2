package budget

import "github.com/shopspring/decimal"

// BudgetMonth is the per-calendar-month budgeting record. Its allocations
// are reachable through Ledger.Allocations.
type BudgetMonth struct {
	ID    string
	Month Month
	Note  string
}

// BudgetAllocation records how much was assigned to one envelope in one
// month. Budgeted may be zero or negative by user action (pulling money back
// out of an envelope).
//
// At most one allocation exists per (category, month) pair; the ledger
// enforces this on insert. Either back-reference may be nil for a corrupt
// record, in which case the allocation contributes zero to every sum.
type BudgetAllocation struct {
	ID       string
	Budgeted decimal.Decimal
	Category *Category
	Month    *BudgetMonth
}
