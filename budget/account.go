package budget

import "time"

// AccountType represents the kind of account
type AccountType int

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeCurrent
	AccountTypeSavings
	AccountTypeCreditCard
	AccountTypeLoan
	AccountTypeMortgage
)

// String returns the display name of the account type
func (t AccountType) String() string {
	switch t {
	case AccountTypeCurrent:
		return "Current"
	case AccountTypeSavings:
		return "Savings"
	case AccountTypeCreditCard:
		return "Credit Card"
	case AccountTypeLoan:
		return "Loan"
	case AccountTypeMortgage:
		return "Mortgage"
	default:
		return "Unknown"
	}
}

// ParseAccountType parses an account type from its display name
func ParseAccountType(s string) (AccountType, bool) {
	switch s {
	case "Current":
		return AccountTypeCurrent, true
	case "Savings":
		return AccountTypeSavings, true
	case "Credit Card":
		return AccountTypeCreditCard, true
	case "Loan":
		return AccountTypeLoan, true
	case "Mortgage":
		return AccountTypeMortgage, true
	default:
		return AccountTypeUnknown, false
	}
}

// Account is a money container. OnBudget accounts participate in envelope
// budgeting; the rest are tracked for net worth only (loans, investments).
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	OnBudget  bool
	SortOrder int
	CreatedAt time.Time
}
