package backup

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/envelope/budget"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

const minimalSnapshot = `{
	"exportDate": "2026-02-15T12:00:00Z",
	"appVersion": "1.0",
	"accounts": [],
	"transactions": [],
	"categories": [],
	"budgetMonths": [],
	"budgetAllocations": [],
	"payees": []
}`

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		checkFunc func(*testing.T, error)
	}{
		{
			name:  "minimal valid snapshot",
			input: minimalSnapshot,
		},
		{
			name:    "not json",
			input:   "accounts: []",
			wantErr: true,
			checkFunc: func(t *testing.T, err error) {
				var perr *ParseError
				assert.True(t, errorAs(err, &perr))
			},
		},
		{
			name:    "missing required collection",
			input:   strings.Replace(minimalSnapshot, `"payees": []`, `"extra": []`, 1),
			wantErr: true,
			checkFunc: func(t *testing.T, err error) {
				var merr *MissingCollectionError
				assert.True(t, errorAs(err, &merr))
				assert.Equal(t, "payees", merr.Key)
			},
		},
		{
			name:    "wrong collection shape",
			input:   strings.Replace(minimalSnapshot, `"accounts": []`, `"accounts": 42`, 1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, err)
			}
		})
	}
}

func TestImport_ResolvesGraph(t *testing.T) {
	month := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Accounts: []AccountRecord{
			{Name: "Joint Current", Type: "Current", IsBudget: true},
			{Name: "Mortgage", Type: "Mortgage", IsBudget: false, SortOrder: 1},
		},
		Categories: []CategoryRecord{
			{Name: "Bills", IsHeader: true, SortOrder: 1},
			{Name: "To Budget", IsSystem: true},
			{Name: "Energy", ParentName: "Bills", SortOrder: 2},
		},
		BudgetMonths: []BudgetMonthRecord{{Month: month, Note: "january"}},
		Transactions: []TransactionRecord{
			{Amount: "3800", Payee: "Employer", Date: month.AddDate(0, 0, 1), Type: "Income",
				AccountName: "Joint Current", CategoryName: "To Budget"},
			{Amount: "140", Payee: "Octopus Energy", Date: month.AddDate(0, 0, 4), Type: "Expense",
				AccountName: "Joint Current", CategoryName: "Energy", CategoryParent: "Bills"},
		},
		BudgetAllocations: []AllocationRecord{
			{Budgeted: "150", CategoryName: "Energy", CategoryParent: "Bills", Month: month},
		},
		Payees: []PayeeRecord{
			{Name: "Octopus Energy", LastUsedDate: month.AddDate(0, 0, 4), UseCount: 14, LastUsedCategoryName: "Energy"},
		},
	}

	l, warnings, err := Import(snap)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))

	account, ok := l.FindAccount("Joint Current")
	assert.True(t, ok)
	assert.True(t, l.Balance(account).Equal(dec("3660")))

	energy, ok := l.FindCategory("Energy", "Bills")
	assert.True(t, ok)
	assert.Equal(t, "Bills", energy.Parent.Name)
	assert.True(t, l.Available(energy, budget.MonthOf(month)).Equal(dec("10")))
	assert.True(t, l.ToBudget(budget.MonthOf(month)).Equal(dec("3650")))

	// The snapshot payee record overrides the usage stats derived from the
	// imported transactions.
	p, ok := l.FindPayee("Octopus Energy")
	assert.True(t, ok)
	assert.Equal(t, 14, p.UseCount)
}

func TestImport_UnresolvedNamesWarnButRestore(t *testing.T) {
	month := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Accounts:     []AccountRecord{{Name: "Checking", Type: "Current", IsBudget: true}},
		Categories:   []CategoryRecord{{Name: "Groceries"}},
		BudgetMonths: []BudgetMonthRecord{{Month: month}},
		Transactions: []TransactionRecord{
			{Amount: "25", Payee: "Tesco", Date: month, Type: "Expense",
				AccountName: "Gone", CategoryName: "Groceries"},
		},
		BudgetAllocations: []AllocationRecord{
			{Budgeted: "100", CategoryName: "Vanished", Month: month},
		},
		Payees: []PayeeRecord{},
	}

	l, warnings, err := Import(snap)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(warnings))

	// The transaction restored with a nil account and contributes zero to
	// every budget sum; the dangling allocation contributes zero as well.
	txn := l.Transactions()
	assert.Equal(t, 1, len(txn))
	assert.True(t, txn[0].Account == nil)
	groceries, _ := l.FindCategory("Groceries", "")
	assert.True(t, l.Activity(groceries, budget.MonthOf(month)).IsZero())
	assert.True(t, l.ToBudget(budget.MonthOf(month)).IsZero())
}

func TestImport_DuplicateAllocationsMerged(t *testing.T) {
	month := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Accounts:     []AccountRecord{},
		Categories:   []CategoryRecord{{Name: "Groceries"}},
		BudgetMonths: []BudgetMonthRecord{{Month: month}},
		Transactions: []TransactionRecord{},
		BudgetAllocations: []AllocationRecord{
			{Budgeted: "100", CategoryName: "Groceries", Month: month},
			{Budgeted: "50", CategoryName: "Groceries", Month: month},
		},
		Payees: []PayeeRecord{},
	}

	l, warnings, err := Import(snap)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(warnings))

	groceries, _ := l.FindCategory("Groceries", "")
	assert.True(t, l.Budgeted(groceries, budget.MonthOf(month)).Equal(dec("150")))
}

func TestImport_MalformedRecordAborts(t *testing.T) {
	snap := &Snapshot{
		Accounts:     []AccountRecord{{Name: "Checking", Type: "Cheque"}},
		Categories:   []CategoryRecord{},
		BudgetMonths: []BudgetMonthRecord{},
		Transactions: []TransactionRecord{},
		Payees:       []PayeeRecord{},
	}
	_, _, err := Import(snap)
	var rerr *RecordError
	assert.True(t, errorAs(err, &rerr))
	assert.Equal(t, "accounts", rerr.Collection)

	snap = &Snapshot{
		Accounts:     []AccountRecord{{Name: "Checking", Type: "Current", IsBudget: true}},
		Categories:   []CategoryRecord{},
		BudgetMonths: []BudgetMonthRecord{},
		Transactions: []TransactionRecord{
			{Amount: "twelve", Payee: "Tesco", Type: "Expense", AccountName: "Checking"},
		},
		Payees: []PayeeRecord{},
	}
	_, _, err = Import(snap)
	assert.True(t, errorAs(err, &rerr))
	assert.Equal(t, "transactions", rerr.Collection)
}

// One failing import reports every malformed record, not just the first.
func TestImport_CollectsAllRecordErrors(t *testing.T) {
	snap := &Snapshot{
		Accounts: []AccountRecord{
			{Name: "Checking", Type: "Cheque"},
			{Name: "Savings", Type: "Savings"},
		},
		Categories:   []CategoryRecord{},
		BudgetMonths: []BudgetMonthRecord{},
		Transactions: []TransactionRecord{
			{Amount: "twelve", Payee: "Tesco", Type: "Expense", AccountName: "Savings"},
		},
		Payees: []PayeeRecord{},
	}
	_, _, err := Import(snap)

	var verr *budget.ValidationErrors
	assert.True(t, errorAs(err, &verr))
	assert.Equal(t, 2, len(verr.Errors))

	var rerr *RecordError
	assert.True(t, errorAs(verr.Errors[0], &rerr))
	assert.Equal(t, "accounts", rerr.Collection)
	assert.True(t, errorAs(verr.Errors[1], &rerr))
	assert.Equal(t, "transactions", rerr.Collection)
}

// Round-trip law: exporting and re-importing an unmodified graph reproduces
// every derived figure with decimal equality.
func TestRoundTrip(t *testing.T) {
	l := budget.New()

	checking := &budget.Account{Name: "Joint Current", Type: budget.AccountTypeCurrent, OnBudget: true}
	card := &budget.Account{Name: "Credit Card", Type: budget.AccountTypeCreditCard, OnBudget: true, SortOrder: 1}
	mortgage := &budget.Account{Name: "Mortgage", Type: budget.AccountTypeMortgage, SortOrder: 2}
	for _, a := range []*budget.Account{checking, card, mortgage} {
		assert.NoError(t, l.AddAccount(a))
	}

	system := &budget.Category{Name: "To Budget", IsSystem: true}
	bills := &budget.Category{Name: "Bills", IsHeader: true, SortOrder: 1}
	assert.NoError(t, l.AddCategory(system))
	assert.NoError(t, l.AddCategory(bills))
	energy := &budget.Category{Name: "Energy", Emoji: "⚡", Parent: bills, SortOrder: 2}
	groceries := &budget.Category{Name: "Groceries", Emoji: "🛒", SortOrder: 3}
	assert.NoError(t, l.AddCategory(energy))
	assert.NoError(t, l.AddCategory(groceries))

	jan := budget.NewMonth(2026, time.January)
	feb := budget.NewMonth(2026, time.February)
	for _, m := range []budget.Month{jan, feb} {
		assert.NoError(t, l.AddBudgetMonth(&budget.BudgetMonth{Month: m}))
		bm, _ := l.BudgetMonth(m)
		_, err := l.SetAllocation(energy, bm, dec("140.50"))
		assert.NoError(t, err)
		_, err = l.SetAllocation(groceries, bm, dec("686"))
		assert.NoError(t, err)
	}

	assert.NoError(t, l.AddTransaction(&budget.Transaction{
		Amount: dec("3800"), Payee: "Employer", Date: time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC),
		Type: budget.TransactionTypeIncome, Account: checking, Category: system, Cleared: true,
	}))
	assert.NoError(t, l.AddTransaction(&budget.Transaction{
		Amount: dec("123.45"), Payee: "Tesco", Date: time.Date(2026, time.January, 9, 18, 30, 0, 0, time.UTC),
		Type: budget.TransactionTypeExpense, Account: card, Category: groceries, Cleared: true,
	}))
	assert.NoError(t, l.AddTransaction(&budget.Transaction{
		Amount: dec("895"), Payee: "Transfer", Date: time.Date(2026, time.February, 1, 7, 0, 0, 0, time.UTC),
		Type: budget.TransactionTypeTransfer, Account: checking, TransferTo: mortgage, Category: energy,
	}))

	data, err := Marshal(Export(l))
	assert.NoError(t, err)

	snap, err := Parse(data)
	assert.NoError(t, err)
	restored, warnings, err := Import(snap)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))

	for _, name := range []string{"Joint Current", "Credit Card", "Mortgage"} {
		before, ok := l.FindAccount(name)
		assert.True(t, ok)
		after, ok := restored.FindAccount(name)
		assert.True(t, ok)
		assert.True(t, l.Balance(before).Equal(restored.Balance(after)), "balance drifted for %s", name)
	}

	for _, m := range []budget.Month{jan, feb} {
		for _, pair := range [][2]string{{"Energy", "Bills"}, {"Groceries", ""}} {
			before, ok := l.FindCategory(pair[0], pair[1])
			assert.True(t, ok)
			after, ok := restored.FindCategory(pair[0], pair[1])
			assert.True(t, ok)
			assert.True(t, l.Available(before, m).Equal(restored.Available(after, m)),
				"available drifted for %s in %s", pair[0], m)
		}
		assert.True(t, l.ToBudget(m).Equal(restored.ToBudget(m)), "to-budget drifted in %s", m)
	}

	// A second export of the restored graph is byte-identical apart from
	// freshly minted identifiers and the export timestamp.
	again, err := Parse(mustMarshal(t, restored))
	assert.NoError(t, err)
	assert.Equal(t, len(snap.Transactions), len(again.Transactions))
	assert.Equal(t, snap.Transactions[0].Amount, again.Transactions[0].Amount)
}

func mustMarshal(t *testing.T, l *budget.Ledger) []byte {
	t.Helper()
	data, err := Marshal(Export(l))
	assert.NoError(t, err)
	return data
}

func errorAs[T error](err error, target *T) bool {
	return errors.As(err, target)
}
