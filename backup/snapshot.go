// Package backup implements the snapshot exchange format: a flat,
// human-readable JSON document holding the full entity graph. Every
// cross-entity reference is by name rather than internal identifier, so a
// snapshot survives being moved between devices, hand-edited, or diffed.
//
// Import is destructive by construction: a snapshot is decoded and resolved
// into a brand-new ledger, and only a snapshot that parses and carries every
// required collection produces one. Unresolvable names degrade to per-record
// warnings instead of failing the whole restore.
package backup

import (
	"encoding/json"
	"time"
)

// requiredCollections are the top-level keys a snapshot must carry. A
// missing key aborts the import before any existing data is touched; an
// empty collection is fine.
var requiredCollections = []string{
	"accounts",
	"transactions",
	"categories",
	"budgetMonths",
	"budgetAllocations",
	"payees",
}

// Snapshot is the root document of a backup file.
type Snapshot struct {
	ExportDate        time.Time          `json:"exportDate"`
	AppVersion        string             `json:"appVersion"`
	Accounts          []AccountRecord    `json:"accounts"`
	Transactions      []TransactionRecord `json:"transactions"`
	Categories        []CategoryRecord   `json:"categories"`
	BudgetMonths      []BudgetMonthRecord `json:"budgetMonths"`
	BudgetAllocations []AllocationRecord `json:"budgetAllocations"`
	Payees            []PayeeRecord      `json:"payees"`
}

// AccountRecord is the wire form of an account.
type AccountRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsBudget  bool      `json:"isBudget"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryRecord is the wire form of a category. Leaves reference their
// header by name.
type CategoryRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	IsHeader   bool   `json:"isHeader"`
	IsSystem   bool   `json:"isSystem"`
	IsHidden   bool   `json:"isHidden,omitempty"`
	SortOrder  int    `json:"sortOrder"`
	ParentName string `json:"parentName,omitempty"`
}

// TransactionRecord is the wire form of a transaction. The amount is a
// decimal string; accounts and categories are referenced by name, with
// categoryParent disambiguating same-named leaves under different headers.
type TransactionRecord struct {
	ID                    string    `json:"id"`
	Amount                string    `json:"amount"`
	Payee                 string    `json:"payee"`
	Memo                  string    `json:"memo"`
	Date                  time.Time `json:"date"`
	Type                  string    `json:"type"`
	IsCleared             bool      `json:"isCleared"`
	AccountName           string    `json:"accountName"`
	CategoryName          string    `json:"categoryName,omitempty"`
	CategoryParent        string    `json:"categoryParent,omitempty"`
	TransferToAccountName string    `json:"transferToAccountName,omitempty"`
}

// BudgetMonthRecord is the wire form of a budget month. The month field is a
// first-of-month timestamp.
type BudgetMonthRecord struct {
	ID    string    `json:"id"`
	Month time.Time `json:"month"`
	Note  string    `json:"note"`
}

// AllocationRecord is the wire form of a budget allocation.
type AllocationRecord struct {
	ID             string    `json:"id"`
	Budgeted       string    `json:"budgeted"`
	CategoryName   string    `json:"categoryName"`
	CategoryParent string    `json:"categoryParent,omitempty"`
	Month          time.Time `json:"month"`
}

// PayeeRecord is the wire form of a payee usage entry.
type PayeeRecord struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	LastUsedDate         time.Time `json:"lastUsedDate"`
	UseCount             int       `json:"useCount"`
	LastUsedCategoryName string    `json:"lastUsedCategoryName,omitempty"`
}

// Parse decodes snapshot bytes, verifying that every required top-level
// collection is present before anything else happens. This is the gate that
// keeps a destructive import from starting on a file that cannot fully
// restore.
func Parse(data []byte) (*Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, NewParseError(err)
	}
	for _, key := range requiredCollections {
		if _, ok := keys[key]; !ok {
			return nil, NewMissingCollectionError(key)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, NewParseError(err)
	}
	return &snap, nil
}
