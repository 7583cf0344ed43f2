package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/envelope/budget"
	"github.com/robinvdvleuten/envelope/telemetry"
)

// Import resolves a snapshot into a fresh ledger. The returned ledger fully
// replaces whatever the caller held before; nothing is mutated until the
// whole snapshot has decoded, so a bad file can never leave a half-restored
// graph behind.
//
// Name-resolution misses are reported as warnings and leave the reference
// empty, restoring as much of a partially-valid backup as possible. Records
// that are malformed in themselves (bad decimal, unknown enum, invalid
// transfer shape) abort the import, but every collection is still walked to
// the end first so one pass reports all bad records, each wrapped in a
// RecordError and collected under a single ValidationErrors.
func Import(snap *Snapshot) (*budget.Ledger, []Warning, error) {
	l := budget.New()
	var warnings []Warning
	var errs []error

	// Headers first so leaves can resolve their parents.
	for i, rec := range snap.Categories {
		if !rec.IsHeader {
			continue
		}
		c := &budget.Category{
			ID:        rec.ID,
			Name:      rec.Name,
			Emoji:     rec.Emoji,
			IsHeader:  true,
			IsHidden:  rec.IsHidden,
			SortOrder: rec.SortOrder,
		}
		if err := l.AddCategory(c); err != nil {
			errs = append(errs, NewRecordError("categories", i, err))
		}
	}
	for i, rec := range snap.Categories {
		if rec.IsHeader {
			continue
		}
		c := &budget.Category{
			ID:        rec.ID,
			Name:      rec.Name,
			Emoji:     rec.Emoji,
			IsSystem:  rec.IsSystem,
			IsHidden:  rec.IsHidden,
			SortOrder: rec.SortOrder,
		}
		if rec.ParentName != "" {
			parent, ok := l.FindCategory(rec.ParentName, "")
			if !ok || !parent.IsHeader {
				warnings = append(warnings, Warning{
					Collection: "categories",
					Name:       rec.Name,
					Reason:     fmt.Sprintf("unknown parent %q, imported as top-level", rec.ParentName),
				})
			} else {
				c.Parent = parent
			}
		}
		if err := l.AddCategory(c); err != nil {
			errs = append(errs, NewRecordError("categories", i, err))
		}
	}

	for i, rec := range snap.Accounts {
		accountType, ok := budget.ParseAccountType(rec.Type)
		if !ok {
			errs = append(errs, NewRecordError("accounts", i, fmt.Errorf("unknown account type %q", rec.Type)))
			continue
		}
		a := &budget.Account{
			ID:        rec.ID,
			Name:      rec.Name,
			Type:      accountType,
			OnBudget:  rec.IsBudget,
			SortOrder: rec.SortOrder,
			CreatedAt: rec.CreatedAt,
		}
		if err := l.AddAccount(a); err != nil {
			errs = append(errs, NewRecordError("accounts", i, err))
		}
	}

	for _, rec := range snap.BudgetMonths {
		m := &budget.BudgetMonth{
			ID:    rec.ID,
			Month: budget.MonthOf(rec.Month),
			Note:  rec.Note,
		}
		if err := l.AddBudgetMonth(m); err != nil {
			warnings = append(warnings, Warning{
				Collection: "budgetMonths",
				Name:       m.Month.String(),
				Reason:     "duplicate month, skipped",
			})
		}
	}

	for i, rec := range snap.Transactions {
		t, warns, err := resolveTransaction(l, rec)
		if err != nil {
			errs = append(errs, NewRecordError("transactions", i, err))
			continue
		}
		warnings = append(warnings, warns...)
		if err := l.AddTransaction(t); err != nil {
			errs = append(errs, NewRecordError("transactions", i, err))
		}
	}

	for i, rec := range snap.BudgetAllocations {
		warns, err := resolveAllocation(l, rec)
		if err != nil {
			errs = append(errs, NewRecordError("budgetAllocations", i, err))
			continue
		}
		warnings = append(warnings, warns...)
	}

	// Snapshot payee records are authoritative over the usage stats
	// accumulated while adding transactions.
	for _, rec := range snap.Payees {
		p := &budget.Payee{
			ID:           rec.ID,
			Name:         rec.Name,
			LastUsedDate: rec.LastUsedDate,
			UseCount:     rec.UseCount,
		}
		if rec.LastUsedCategoryName != "" {
			c, ok := findCategoryByName(l, rec.LastUsedCategoryName)
			if !ok {
				warnings = append(warnings, Warning{
					Collection: "payees",
					Name:       rec.Name,
					Reason:     fmt.Sprintf("unknown category %q", rec.LastUsedCategoryName),
				})
			}
			p.LastUsedCategory = c
		}
		l.PutPayee(p)
	}

	if len(errs) > 0 {
		return nil, nil, &budget.ValidationErrors{Errors: errs}
	}
	return l, warnings, nil
}

func resolveTransaction(l *budget.Ledger, rec TransactionRecord) (*budget.Transaction, []Warning, error) {
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid amount %q: %w", rec.Amount, err)
	}
	txnType, ok := budget.ParseTransactionType(rec.Type)
	if !ok {
		return nil, nil, fmt.Errorf("unknown transaction type %q", rec.Type)
	}

	t := &budget.Transaction{
		ID:      rec.ID,
		Amount:  amount,
		Payee:   rec.Payee,
		Memo:    rec.Memo,
		Date:    rec.Date,
		Type:    txnType,
		Cleared: rec.IsCleared,
	}

	var warnings []Warning
	if rec.AccountName != "" {
		account, ok := l.FindAccount(rec.AccountName)
		if !ok {
			warnings = append(warnings, Warning{
				Collection: "transactions",
				Name:       rec.Payee,
				Reason:     fmt.Sprintf("unknown account %q", rec.AccountName),
			})
		}
		t.Account = account
	}
	if rec.CategoryName != "" {
		category, ok := l.FindCategory(rec.CategoryName, rec.CategoryParent)
		if !ok {
			warnings = append(warnings, Warning{
				Collection: "transactions",
				Name:       rec.Payee,
				Reason:     fmt.Sprintf("unknown category %q", rec.CategoryName),
			})
		}
		t.Category = category
	}
	if rec.TransferToAccountName != "" {
		destination, ok := l.FindAccount(rec.TransferToAccountName)
		if !ok {
			warnings = append(warnings, Warning{
				Collection: "transactions",
				Name:       rec.Payee,
				Reason:     fmt.Sprintf("unknown transfer destination %q", rec.TransferToAccountName),
			})
		}
		t.TransferTo = destination
	}
	return t, warnings, nil
}

func resolveAllocation(l *budget.Ledger, rec AllocationRecord) ([]Warning, error) {
	budgeted, err := decimal.NewFromString(rec.Budgeted)
	if err != nil {
		return nil, fmt.Errorf("invalid budgeted amount %q: %w", rec.Budgeted, err)
	}

	var warnings []Warning
	a := &budget.BudgetAllocation{ID: rec.ID, Budgeted: budgeted}

	if rec.CategoryName != "" {
		category, ok := l.FindCategory(rec.CategoryName, rec.CategoryParent)
		if !ok {
			warnings = append(warnings, Warning{
				Collection: "budgetAllocations",
				Name:       rec.CategoryName,
				Reason:     "unknown category",
			})
		}
		a.Category = category
	}
	month := budget.MonthOf(rec.Month)
	if bm, ok := l.BudgetMonth(month); ok {
		a.Month = bm
	} else {
		warnings = append(warnings, Warning{
			Collection: "budgetAllocations",
			Name:       rec.CategoryName,
			Reason:     fmt.Sprintf("unknown budget month %s", month),
		})
	}

	// The engine enforces one allocation per (category, month). A snapshot
	// carrying duplicates has them merged by summing, which preserves every
	// derived figure the duplicated rows produced.
	if a.Category != nil && a.Month != nil {
		if existing, ok := l.Allocation(a.Category, month); ok {
			existing.Budgeted = existing.Budgeted.Add(a.Budgeted)
			warnings = append(warnings, Warning{
				Collection: "budgetAllocations",
				Name:       rec.CategoryName,
				Reason:     fmt.Sprintf("duplicate allocation for %s, merged", month),
			})
			return warnings, nil
		}
	}
	if err := l.AddAllocation(a); err != nil {
		return nil, err
	}
	return warnings, nil
}

// findCategoryByName resolves a category by name alone, preferring the first
// match in sort order when leaves under different headers share a name.
func findCategoryByName(l *budget.Ledger, name string) (*budget.Category, bool) {
	for _, c := range l.Categories() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// LoadFile reads, parses, and resolves a snapshot file in one step.
func LoadFile(ctx context.Context, filename string) (*budget.Ledger, []Warning, error) {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("backup.load %s", filepath.Base(filename)))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	parseTimer := timer.Child("backup.parse")
	snap, err := Parse(data)
	parseTimer.End()
	if err != nil {
		return nil, nil, err
	}

	resolveTimer := timer.Child("backup.resolve")
	defer resolveTimer.End()
	return Import(snap)
}
