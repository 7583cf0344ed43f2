package budget

import "github.com/shopspring/decimal"

// Ledger queries. Every function here is pure: it walks the current entity
// graph from scratch and returns a decimal, mutating nothing and caching
// nothing. Dangling references contribute zero rather than failing, so one
// corrupt record can never take down a whole budget computation.

// Balance returns the account's running balance: income in, expenses and
// outgoing transfers out, incoming transfers in. Transfer direction is the
// only case where an account is affected by a transaction it does not own.
func (l *Ledger) Balance(a *Account) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.txBySource[a.ID] {
		switch t.Type {
		case TransactionTypeIncome:
			total = total.Add(t.Amount)
		case TransactionTypeExpense:
			total = total.Sub(t.Amount)
		case TransactionTypeTransfer:
			total = total.Sub(t.Amount)
		}
	}
	for _, t := range l.txByDestination[a.ID] {
		total = total.Add(t.Amount)
	}
	return total
}

// Activity returns the net effect of one calendar month's transactions on a
// category.
//
// Only money moving through the budgeted system counts:
//   - income and expenses count only when they sit on a budget account
//   - transfers count only when they cross the budget/tracking boundary;
//     leaving the budgeted side subtracts, entering it adds
//   - everything else contributes zero, even with a category attached
func (l *Ledger) Activity(c *Category, month Month) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.txByCategory[c.ID] {
		if !month.Contains(t.Date) {
			continue
		}
		total = total.Add(categoryEffect(t))
	}
	return total
}

// CumulativeActivity returns the category's activity accumulated over all
// time through the end of the given month. Transactions are bucketed by
// their date's own calendar fields, exactly as Activity buckets them, so a
// date carrying a zone offset lands in one month for both functions.
func (l *Ledger) CumulativeActivity(c *Category, through Month) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.txByCategory[c.ID] {
		if MonthOf(t.Date).After(through) {
			continue
		}
		total = total.Add(categoryEffect(t))
	}
	return total
}

// categoryEffect returns the signed contribution of a single transaction to
// its category's activity.
func categoryEffect(t *Transaction) decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		if t.Account != nil && t.Account.OnBudget {
			return t.Amount
		}
	case TransactionTypeExpense:
		if t.Account != nil && t.Account.OnBudget {
			return t.Amount.Neg()
		}
	case TransactionTypeTransfer:
		if t.CrossesBoundary() {
			if t.Account.OnBudget {
				return t.Amount.Neg()
			}
			return t.Amount
		}
	}
	return decimal.Zero
}

// Budgeted returns the amount assigned to a category in a single month.
func (l *Ledger) Budgeted(c *Category, month Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.allocByCategory[c.ID] {
		if a.Month == nil || a.Month.Month != month {
			continue
		}
		total = total.Add(a.Budgeted)
	}
	return total
}

// CumulativeBudgeted returns everything ever assigned to a category through
// the end of the given month.
func (l *Ledger) CumulativeBudgeted(c *Category, through Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.allocByCategory[c.ID] {
		if a.Month == nil || a.Month.Month.After(through) {
			continue
		}
		total = total.Add(a.Budgeted)
	}
	return total
}

// Available returns the envelope's running balance through the given month:
// everything ever assigned plus everything ever spent or received. Because
// both operands are cumulative, the balance carries forward across month
// boundaries on its own; an overspent envelope starts the next month
// negative with no explicit rollover step.
func (l *Ledger) Available(c *Category, through Month) decimal.Decimal {
	return l.CumulativeBudgeted(c, through).Add(l.CumulativeActivity(c, through))
}

// TotalBudgeted returns the sum assigned across all categories in a single
// month.
func (l *Ledger) TotalBudgeted(month Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.allocByMonth[month] {
		if a.Category == nil {
			continue
		}
		total = total.Add(a.Budgeted)
	}
	return total
}

// totalBudgetedThrough returns everything ever assigned to any envelope
// through the end of the given month. Allocations with a dangling category
// or month reference contribute zero.
func (l *Ledger) totalBudgetedThrough(through Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.allocations {
		if a.Category == nil || a.Month == nil || a.Month.Month.After(through) {
			continue
		}
		total = total.Add(a.Budgeted)
	}
	return total
}

// ToBudget returns the unassigned-income figure for a month: all
// uncategorized income and uncategorized inbound cross-boundary transfers on
// budget accounts through the end of the month, minus everything ever
// assigned to any envelope. Zero means the budget is fully planned; negative
// means more was assigned than received.
//
// Income filed under the system category counts as unassigned, matching how
// the entry form records it. Months are bucketed by the date's own calendar
// fields, the same rule Activity uses.
func (l *Ledger) ToBudget(through Month) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.transactions {
		if MonthOf(t.Date).After(through) || !t.Unassigned() {
			continue
		}
		switch t.Type {
		case TransactionTypeIncome:
			if t.Account != nil && t.Account.OnBudget {
				total = total.Add(t.Amount)
			}
		case TransactionTypeExpense:
			if t.Account != nil && t.Account.OnBudget {
				total = total.Sub(t.Amount)
			}
		case TransactionTypeTransfer:
			if t.CrossesBoundary() {
				if t.TransferTo.OnBudget {
					total = total.Add(t.Amount)
				} else {
					total = total.Sub(t.Amount)
				}
			}
		}
	}
	return total.Sub(l.totalBudgetedThrough(through))
}

// AverageMonthlySpending returns the mean spending in a category over the
// windowMonths calendar months strictly before the given month. Only months
// with net spending (strictly negative activity) are included; a month with
// no activity would otherwise drag the average below what the user actually
// spends per active month. Returns zero when no month qualifies.
func (l *Ledger) AverageMonthlySpending(c *Category, before Month, windowMonths int) decimal.Decimal {
	sum := decimal.Zero
	count := int64(0)
	month := before
	for i := 0; i < windowMonths; i++ {
		month = month.Prev()
		activity := l.Activity(c, month)
		if activity.IsNegative() {
			sum = sum.Add(activity.Abs())
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(count))
}

// AverageMonthlyBudgeted returns the mean amount assigned to a category over
// the windowMonths calendar months strictly before the given month, counting
// only months with a non-zero assignment. Returns zero when no month
// qualifies.
func (l *Ledger) AverageMonthlyBudgeted(c *Category, before Month, windowMonths int) decimal.Decimal {
	sum := decimal.Zero
	count := int64(0)
	month := before
	for i := 0; i < windowMonths; i++ {
		month = month.Prev()
		budgeted := l.Budgeted(c, month)
		if !budgeted.IsZero() {
			sum = sum.Add(budgeted)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(count))
}
