package budget

import "fmt"

// ValidationErrors wraps multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// HierarchyError is returned when a category violates the header/leaf shape:
// a header with a parent, a leaf parented to another leaf, or a parent that
// is not registered in the ledger.
type HierarchyError struct {
	Category string
	Parent   string
	Reason   string
}

func (e *HierarchyError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("category %q: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("category %q (parent %q): %s", e.Category, e.Parent, e.Reason)
}

// NewHierarchyError creates an error for an invalid category tree shape.
func NewHierarchyError(category *Category, reason string) *HierarchyError {
	e := &HierarchyError{Category: category.Name, Reason: reason}
	if category.Parent != nil {
		e.Parent = category.Parent.Name
	}
	return e
}

// SystemCategoryError is returned when a second system category is added.
// Exactly one system category (the unassigned-income pseudo-envelope) may
// exist per ledger.
type SystemCategoryError struct {
	Category string
	Existing string
}

func (e *SystemCategoryError) Error() string {
	return fmt.Sprintf("category %q cannot be the system category: %q already is", e.Category, e.Existing)
}

// NewSystemCategoryError creates an error for a duplicate system category.
func NewSystemCategoryError(category, existing *Category) *SystemCategoryError {
	return &SystemCategoryError{Category: category.Name, Existing: existing.Name}
}

// TransferError is returned when a transaction's transfer shape is invalid:
// a destination on a non-transfer, or a transfer back into its own source
// account.
type TransferError struct {
	Transaction *Transaction
	Reason      string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transaction %q (%s): %s", e.Transaction.Payee, e.Transaction.Date.Format("2006-01-02"), e.Reason)
}

// NewTransferError creates an error for an invalid transfer shape.
func NewTransferError(txn *Transaction, reason string) *TransferError {
	return &TransferError{Transaction: txn, Reason: reason}
}

// NegativeAmountError is returned when a transaction carries a negative
// magnitude. Direction is expressed by the transaction type, never by sign.
type NegativeAmountError struct {
	Transaction *Transaction
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("transaction %q (%s): amount %s must not be negative",
		e.Transaction.Payee, e.Transaction.Date.Format("2006-01-02"), e.Transaction.Amount)
}

// NewNegativeAmountError creates an error for a negative transaction amount.
func NewNegativeAmountError(txn *Transaction) *NegativeAmountError {
	return &NegativeAmountError{Transaction: txn}
}

// DuplicateAllocationError is returned when a second allocation is added for
// the same (category, month) cell.
type DuplicateAllocationError struct {
	Category string
	Month    Month
}

func (e *DuplicateAllocationError) Error() string {
	return fmt.Sprintf("allocation for %q in %s already exists", e.Category, e.Month)
}

// NewDuplicateAllocationError creates an error for a duplicate allocation cell.
func NewDuplicateAllocationError(category *Category, month Month) *DuplicateAllocationError {
	return &DuplicateAllocationError{Category: category.Name, Month: month}
}

// UnknownEntityError is returned when an entity references another entity
// that is not registered in the ledger.
type UnknownEntityError struct {
	Kind string // "account", "category", "budget month"
	Name string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("reference to unknown %s %q", e.Kind, e.Name)
}

// NewUnknownAccountError creates an error for a reference to an unregistered account.
func NewUnknownAccountError(account *Account) *UnknownEntityError {
	return &UnknownEntityError{Kind: "account", Name: account.Name}
}

// NewUnknownCategoryError creates an error for a reference to an unregistered category.
func NewUnknownCategoryError(category *Category) *UnknownEntityError {
	return &UnknownEntityError{Kind: "category", Name: category.Name}
}

// NewUnknownMonthError creates an error for a reference to an unregistered budget month.
func NewUnknownMonthError(month Month) *UnknownEntityError {
	return &UnknownEntityError{Kind: "budget month", Name: month.String()}
}

// DuplicateEntityError is returned when an entity with the same identity is
// added twice.
type DuplicateEntityError struct {
	Kind string
	Name string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}
