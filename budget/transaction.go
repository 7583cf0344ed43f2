package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of transaction
type TransactionType int

const (
	TransactionTypeUnknown TransactionType = iota
	TransactionTypeIncome
	TransactionTypeExpense
	TransactionTypeTransfer
)

// String returns the display name of the transaction type
func (t TransactionType) String() string {
	switch t {
	case TransactionTypeIncome:
		return "Income"
	case TransactionTypeExpense:
		return "Expense"
	case TransactionTypeTransfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// ParseTransactionType parses a transaction type from its display name
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "Income":
		return TransactionTypeIncome, true
	case "Expense":
		return TransactionTypeExpense, true
	case "Transfer":
		return TransactionTypeTransfer, true
	default:
		return TransactionTypeUnknown, false
	}
}

// Transaction is a single income, expense, or transfer event. Amount is a
// non-negative magnitude; the transaction type determines the sign it
// contributes to each balance.
type Transaction struct {
	ID      string
	Amount  decimal.Decimal
	Payee   string
	Memo    string
	Date    time.Time
	Type    TransactionType
	Cleared bool

	// Account is the source account and owns the transaction: deleting the
	// account deletes its transactions.
	Account *Account

	// Category is optional. Nil (or the system category) means the money is
	// unassigned.
	Category *Category

	// TransferTo is the destination account, set only on transfers.
	TransferTo *Account
}

// CrossesBoundary reports whether the transaction is a transfer between the
// budget and tracking account classes. Only such transfers affect category
// activity and the to-budget figure; a transfer that stays on one side of
// the boundary moves money the budget already accounts for, so it
// contributes nothing even when a category is attached.
func (t *Transaction) CrossesBoundary() bool {
	if t.Type != TransactionTypeTransfer {
		return false
	}
	if t.Account == nil || t.TransferTo == nil {
		return false
	}
	return t.Account.OnBudget != t.TransferTo.OnBudget
}

// Unassigned reports whether the transaction's money has not been assigned
// to an envelope. The original data files categorize unassigned income to
// the system category rather than leaving the link empty, so both shapes
// count.
func (t *Transaction) Unassigned() bool {
	return t.Category == nil || t.Category.IsSystem
}
