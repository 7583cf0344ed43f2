package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/robinvdvleuten/envelope/budget"
)

// appVersion is the snapshot format version written on export.
const appVersion = "1.0"

// Export renders a ledger as a snapshot. Output is deterministic: every
// collection is emitted in its canonical sort order and amounts keep their
// exact decimal representation, so exporting an unmodified graph twice
// produces byte-identical documents and re-importing reproduces every
// derived figure exactly.
func Export(l *budget.Ledger) *Snapshot {
	snap := &Snapshot{
		ExportDate:        time.Now().UTC().Truncate(time.Second),
		AppVersion:        appVersion,
		Accounts:          []AccountRecord{},
		Transactions:      []TransactionRecord{},
		Categories:        []CategoryRecord{},
		BudgetMonths:      []BudgetMonthRecord{},
		BudgetAllocations: []AllocationRecord{},
		Payees:            []PayeeRecord{},
	}

	for _, a := range l.Accounts() {
		snap.Accounts = append(snap.Accounts, AccountRecord{
			ID:        a.ID,
			Name:      a.Name,
			Type:      a.Type.String(),
			IsBudget:  a.OnBudget,
			SortOrder: a.SortOrder,
			CreatedAt: a.CreatedAt,
		})
	}

	// Headers before leaves, so a streaming importer can resolve parents in
	// a single pass.
	for _, c := range l.Categories() {
		if c.IsHeader {
			snap.Categories = append(snap.Categories, categoryRecord(c))
		}
	}
	for _, c := range l.Categories() {
		if !c.IsHeader {
			snap.Categories = append(snap.Categories, categoryRecord(c))
		}
	}

	for _, t := range l.Transactions() {
		rec := TransactionRecord{
			ID:        t.ID,
			Amount:    t.Amount.String(),
			Payee:     t.Payee,
			Memo:      t.Memo,
			Date:      t.Date,
			Type:      t.Type.String(),
			IsCleared: t.Cleared,
		}
		if t.Account != nil {
			rec.AccountName = t.Account.Name
		}
		if t.Category != nil {
			rec.CategoryName = t.Category.Name
			rec.CategoryParent = t.Category.ParentName()
		}
		if t.TransferTo != nil {
			rec.TransferToAccountName = t.TransferTo.Name
		}
		snap.Transactions = append(snap.Transactions, rec)
	}

	for _, m := range l.BudgetMonths() {
		snap.BudgetMonths = append(snap.BudgetMonths, BudgetMonthRecord{
			ID:    m.ID,
			Month: m.Month.Start(),
			Note:  m.Note,
		})
	}

	for _, a := range l.Allocations() {
		rec := AllocationRecord{
			ID:       a.ID,
			Budgeted: a.Budgeted.String(),
		}
		if a.Category != nil {
			rec.CategoryName = a.Category.Name
			rec.CategoryParent = a.Category.ParentName()
		}
		if a.Month != nil {
			rec.Month = a.Month.Month.Start()
		}
		snap.BudgetAllocations = append(snap.BudgetAllocations, rec)
	}

	for _, p := range l.Payees() {
		rec := PayeeRecord{
			ID:           p.ID,
			Name:         p.Name,
			LastUsedDate: p.LastUsedDate,
			UseCount:     p.UseCount,
		}
		if p.LastUsedCategory != nil {
			rec.LastUsedCategoryName = p.LastUsedCategory.Name
		}
		snap.Payees = append(snap.Payees, rec)
	}

	return snap
}

func categoryRecord(c *budget.Category) CategoryRecord {
	return CategoryRecord{
		ID:         c.ID,
		Name:       c.Name,
		Emoji:      c.Emoji,
		IsHeader:   c.IsHeader,
		IsSystem:   c.IsSystem,
		IsHidden:   c.IsHidden,
		SortOrder:  c.SortOrder,
		ParentName: c.ParentName(),
	}
}

// Marshal renders a snapshot as indented JSON with a trailing newline.
func Marshal(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile exports a ledger to a snapshot file.
func WriteFile(filename string, l *budget.Ledger) error {
	data, err := Marshal(Export(l))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
