// Package budget implements the envelope-budgeting ledger engine: the entity
// graph (accounts, categories, transactions, budget months, allocations) and
// the pure queries that derive every user-visible number from it.
//
// The engine keeps no derived state. Account balances, category activity,
// envelope availability, and the to-budget figure are all recomputed from the
// transaction and allocation log on every call. Personal-finance volumes are
// thousands of rows, so a full O(n) walk is cheaper than maintaining cached
// running balances and the invalidation they would require.
//
// Example usage:
//
//	l := budget.New()
//	checking := &budget.Account{Name: "Checking", Type: budget.AccountTypeCurrent, OnBudget: true}
//	if err := l.AddAccount(checking); err != nil {
//	    log.Fatal(err)
//	}
//
//	balance := l.Balance(checking)
//
// All monetary values are decimal.Decimal magnitudes; sign conventions are
// applied by the queries based on transaction type.
package budget

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// allocCell identifies the unique (category, month) slot an allocation
// occupies.
type allocCell struct {
	categoryID string
	month      Month
}

// Ledger is the arena holding the full entity graph. Relationships between
// entities are stored one-way (child to owner); the reverse direction lives
// in secondary indexes maintained by the mutators, so the graph stays
// acyclic and cheap to walk.
//
// The ledger itself is not safe for concurrent mutation; callers at the
// persistence boundary must ensure readers observe fully-applied writes.
// The queries are pure and re-entrant.
type Ledger struct {
	accounts     map[string]*Account
	categories   map[string]*Category
	transactions map[string]*Transaction
	months       map[Month]*BudgetMonth
	allocations  map[string]*BudgetAllocation
	payees       map[string]*Payee

	txBySource      map[string][]*Transaction
	txByDestination map[string][]*Transaction
	txByCategory    map[string][]*Transaction
	allocByCategory map[string][]*BudgetAllocation
	allocByMonth    map[Month][]*BudgetAllocation
	allocByCell     map[allocCell]*BudgetAllocation
	childrenOf      map[string][]*Category

	system *Category
}

// New creates a new empty ledger
func New() *Ledger {
	return &Ledger{
		accounts:     make(map[string]*Account),
		categories:   make(map[string]*Category),
		transactions: make(map[string]*Transaction),
		months:       make(map[Month]*BudgetMonth),
		allocations:  make(map[string]*BudgetAllocation),
		payees:       make(map[string]*Payee),

		txBySource:      make(map[string][]*Transaction),
		txByDestination: make(map[string][]*Transaction),
		txByCategory:    make(map[string][]*Transaction),
		allocByCategory: make(map[string][]*BudgetAllocation),
		allocByMonth:    make(map[Month][]*BudgetAllocation),
		allocByCell:     make(map[allocCell]*BudgetAllocation),
		childrenOf:      make(map[string][]*Category),
	}
}

// AddAccount registers an account. An empty ID is minted.
func (l *Ledger) AddAccount(a *Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, ok := l.accounts[a.ID]; ok {
		return &DuplicateEntityError{Kind: "account", Name: a.Name}
	}
	l.accounts[a.ID] = a
	return nil
}

// Account returns an account by ID.
func (l *Ledger) Account(id string) (*Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// FindAccount resolves an account by name. On duplicate names the first
// match in sort order wins.
func (l *Ledger) FindAccount(name string) (*Account, bool) {
	for _, a := range l.Accounts() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Accounts returns all accounts sorted by sort order, then name.
func (l *Ledger) Accounts() []*Account {
	accounts := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b *Account) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return strings.Compare(a.Name, b.Name)
	})
	return accounts
}

// RemoveAccount deletes an account. Its owned transactions are deleted with
// it, and transfers elsewhere that pointed at it as a destination keep the
// transaction but lose the reference.
func (l *Ledger) RemoveAccount(id string) {
	a, ok := l.accounts[id]
	if !ok {
		return
	}

	for _, txn := range slices.Clone(l.txBySource[a.ID]) {
		l.RemoveTransaction(txn.ID)
	}
	for _, txn := range slices.Clone(l.txByDestination[a.ID]) {
		txn.TransferTo = nil
	}
	delete(l.txBySource, a.ID)
	delete(l.txByDestination, a.ID)
	delete(l.accounts, id)
}

// AddCategory registers a category, validating the header/leaf shape and
// the single-system-category rule.
func (l *Ledger) AddCategory(c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := l.categories[c.ID]; ok {
		return &DuplicateEntityError{Kind: "category", Name: c.Name}
	}

	if c.IsHeader && c.Parent != nil {
		return NewHierarchyError(c, "a header cannot have a parent")
	}
	if c.Parent != nil {
		parent, ok := l.categories[c.Parent.ID]
		if !ok {
			return NewUnknownCategoryError(c.Parent)
		}
		if !parent.IsHeader {
			return NewHierarchyError(c, "parent is not a header")
		}
	}
	if c.IsSystem {
		if c.IsHeader {
			return NewHierarchyError(c, "the system category cannot be a header")
		}
		if l.system != nil {
			return NewSystemCategoryError(c, l.system)
		}
		l.system = c
	}

	l.categories[c.ID] = c
	if c.Parent != nil {
		l.childrenOf[c.Parent.ID] = append(l.childrenOf[c.Parent.ID], c)
	}
	return nil
}

// Category returns a category by ID.
func (l *Ledger) Category(id string) (*Category, bool) {
	c, ok := l.categories[id]
	return c, ok
}

// FindCategory resolves a category by name and parent name. Leaves with the
// same name under different headers are distinct; first match in sort order
// wins on a genuine collision.
func (l *Ledger) FindCategory(name, parentName string) (*Category, bool) {
	for _, c := range l.Categories() {
		if c.Name == name && c.ParentName() == parentName {
			return c, true
		}
	}
	return nil, false
}

// Categories returns all categories sorted by sort order, then name.
func (l *Ledger) Categories() []*Category {
	categories := make([]*Category, 0, len(l.categories))
	for _, c := range l.categories {
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b *Category) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return strings.Compare(a.Name, b.Name)
	})
	return categories
}

// Children returns a header's child leaves in sort order.
func (l *Ledger) Children(header *Category) []*Category {
	children := slices.Clone(l.childrenOf[header.ID])
	slices.SortFunc(children, func(a, b *Category) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return strings.Compare(a.Name, b.Name)
	})
	return children
}

// SystemCategory returns the unassigned-income pseudo-category, or nil if
// none is registered.
func (l *Ledger) SystemCategory() *Category {
	return l.system
}

// RemoveCategory deletes a category. Transactions and allocations that
// referenced it keep their rows but lose the link; child leaves become
// top-level.
func (l *Ledger) RemoveCategory(id string) {
	c, ok := l.categories[id]
	if !ok {
		return
	}

	for _, txn := range l.txByCategory[c.ID] {
		txn.Category = nil
	}
	delete(l.txByCategory, c.ID)

	for _, alloc := range l.allocByCategory[c.ID] {
		if alloc.Month != nil {
			delete(l.allocByCell, allocCell{categoryID: c.ID, month: alloc.Month.Month})
		}
		alloc.Category = nil
	}
	delete(l.allocByCategory, c.ID)

	for _, child := range l.childrenOf[c.ID] {
		child.Parent = nil
	}
	delete(l.childrenOf, c.ID)

	if c.Parent != nil {
		l.childrenOf[c.Parent.ID] = removeCategory(l.childrenOf[c.Parent.ID], c)
	}
	for _, p := range l.payees {
		if p.LastUsedCategory == c {
			p.LastUsedCategory = nil
		}
	}
	if l.system == c {
		l.system = nil
	}
	delete(l.categories, id)
}

// AddTransaction registers a transaction, validating its magnitude, its
// transfer shape, and that every non-nil reference is registered. Payee
// usage is tracked as a side effect.
func (l *Ledger) AddTransaction(t *Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, ok := l.transactions[t.ID]; ok {
		return &DuplicateEntityError{Kind: "transaction", Name: t.Payee}
	}

	if t.Amount.IsNegative() {
		return NewNegativeAmountError(t)
	}
	if t.Type != TransactionTypeTransfer && t.TransferTo != nil {
		return NewTransferError(t, "only transfers can have a destination account")
	}
	if t.TransferTo != nil && t.Account != nil && t.TransferTo.ID == t.Account.ID {
		return NewTransferError(t, "cannot transfer into the source account")
	}
	if t.Account != nil {
		if _, ok := l.accounts[t.Account.ID]; !ok {
			return NewUnknownAccountError(t.Account)
		}
	}
	if t.TransferTo != nil {
		if _, ok := l.accounts[t.TransferTo.ID]; !ok {
			return NewUnknownAccountError(t.TransferTo)
		}
	}
	if t.Category != nil {
		if _, ok := l.categories[t.Category.ID]; !ok {
			return NewUnknownCategoryError(t.Category)
		}
	}

	l.transactions[t.ID] = t
	if t.Account != nil {
		l.txBySource[t.Account.ID] = append(l.txBySource[t.Account.ID], t)
	}
	if t.TransferTo != nil {
		l.txByDestination[t.TransferTo.ID] = append(l.txByDestination[t.TransferTo.ID], t)
	}
	if t.Category != nil {
		l.txByCategory[t.Category.ID] = append(l.txByCategory[t.Category.ID], t)
	}
	l.touchPayee(t)
	return nil
}

// Transaction returns a transaction by ID.
func (l *Ledger) Transaction(id string) (*Transaction, bool) {
	t, ok := l.transactions[id]
	return t, ok
}

// Transactions returns all transactions sorted by date, then ID.
func (l *Ledger) Transactions() []*Transaction {
	transactions := make([]*Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		transactions = append(transactions, t)
	}
	slices.SortFunc(transactions, func(a, b *Transaction) int {
		if !a.Date.Equal(b.Date) {
			if a.Date.Before(b.Date) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return transactions
}

// RemoveTransaction deletes a transaction and unlinks it from every index.
func (l *Ledger) RemoveTransaction(id string) {
	t, ok := l.transactions[id]
	if !ok {
		return
	}
	if t.Account != nil {
		l.txBySource[t.Account.ID] = removeTransaction(l.txBySource[t.Account.ID], t)
	}
	if t.TransferTo != nil {
		l.txByDestination[t.TransferTo.ID] = removeTransaction(l.txByDestination[t.TransferTo.ID], t)
	}
	if t.Category != nil {
		l.txByCategory[t.Category.ID] = removeTransaction(l.txByCategory[t.Category.ID], t)
	}
	delete(l.transactions, id)
}

// AddBudgetMonth registers a budget month. The month value is already
// normalized by construction of Month.
func (l *Ledger) AddBudgetMonth(m *BudgetMonth) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, ok := l.months[m.Month]; ok {
		return &DuplicateEntityError{Kind: "budget month", Name: m.Month.String()}
	}
	l.months[m.Month] = m
	return nil
}

// BudgetMonth returns the budget month record for a calendar month.
func (l *Ledger) BudgetMonth(month Month) (*BudgetMonth, bool) {
	m, ok := l.months[month]
	return m, ok
}

// BudgetMonths returns all budget months in chronological order.
func (l *Ledger) BudgetMonths() []*BudgetMonth {
	months := make([]*BudgetMonth, 0, len(l.months))
	for _, m := range l.months {
		months = append(months, m)
	}
	slices.SortFunc(months, func(a, b *BudgetMonth) int {
		if a.Month.Before(b.Month) {
			return -1
		}
		if a.Month.After(b.Month) {
			return 1
		}
		return 0
	})
	return months
}

// AddAllocation registers an allocation. The (category, month) cell must be
// unique, the category must be a registered leaf, and the month must be a
// registered budget month. Either reference may be nil for a record imported
// from a corrupt backup; such allocations are kept but contribute zero.
func (l *Ledger) AddAllocation(a *BudgetAllocation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, ok := l.allocations[a.ID]; ok {
		return &DuplicateEntityError{Kind: "allocation", Name: a.ID}
	}

	if a.Category != nil {
		c, ok := l.categories[a.Category.ID]
		if !ok {
			return NewUnknownCategoryError(a.Category)
		}
		if c.IsHeader {
			return NewHierarchyError(c, "cannot budget against a header")
		}
	}
	if a.Month != nil {
		if _, ok := l.months[a.Month.Month]; !ok {
			return NewUnknownMonthError(a.Month.Month)
		}
	}
	if a.Category != nil && a.Month != nil {
		cell := allocCell{categoryID: a.Category.ID, month: a.Month.Month}
		if _, ok := l.allocByCell[cell]; ok {
			return NewDuplicateAllocationError(a.Category, a.Month.Month)
		}
		l.allocByCell[cell] = a
	}

	l.allocations[a.ID] = a
	if a.Category != nil {
		l.allocByCategory[a.Category.ID] = append(l.allocByCategory[a.Category.ID], a)
	}
	if a.Month != nil {
		l.allocByMonth[a.Month.Month] = append(l.allocByMonth[a.Month.Month], a)
	}
	return nil
}

// SetAllocation assigns an amount to a (category, month) cell, updating the
// existing allocation in place if one exists. This is the edit path for the
// budget screen: "assign X to this envelope this month" always lands on the
// single cell rather than stacking a second allocation.
func (l *Ledger) SetAllocation(category *Category, month *BudgetMonth, amount decimal.Decimal) (*BudgetAllocation, error) {
	if existing, ok := l.allocByCell[allocCell{categoryID: category.ID, month: month.Month}]; ok {
		existing.Budgeted = amount
		return existing, nil
	}
	a := &BudgetAllocation{Budgeted: amount, Category: category, Month: month}
	if err := l.AddAllocation(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Allocation returns the allocation occupying a (category, month) cell.
func (l *Ledger) Allocation(category *Category, month Month) (*BudgetAllocation, bool) {
	a, ok := l.allocByCell[allocCell{categoryID: category.ID, month: month}]
	return a, ok
}

// Allocations returns all allocations ordered by month, then category sort
// order.
func (l *Ledger) Allocations() []*BudgetAllocation {
	allocations := make([]*BudgetAllocation, 0, len(l.allocations))
	for _, a := range l.allocations {
		allocations = append(allocations, a)
	}
	slices.SortFunc(allocations, func(a, b *BudgetAllocation) int {
		am, bm := allocationMonth(a), allocationMonth(b)
		if am.Before(bm) {
			return -1
		}
		if am.After(bm) {
			return 1
		}
		return strings.Compare(allocationCategoryName(a), allocationCategoryName(b))
	})
	return allocations
}

// Payees returns all payees sorted by name.
func (l *Ledger) Payees() []*Payee {
	payees := make([]*Payee, 0, len(l.payees))
	for _, p := range l.payees {
		payees = append(payees, p)
	}
	slices.SortFunc(payees, func(a, b *Payee) int {
		return strings.Compare(a.Name, b.Name)
	})
	return payees
}

// FindPayee resolves a payee by name.
func (l *Ledger) FindPayee(name string) (*Payee, bool) {
	p, ok := l.payees[strings.ToLower(name)]
	return p, ok
}

// PutPayee registers or replaces a payee record, overriding any usage stats
// accumulated from transactions. Used by the backup importer, where the
// snapshot's payee records are authoritative.
func (l *Ledger) PutPayee(p *Payee) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	l.payees[strings.ToLower(p.Name)] = p
}

// touchPayee records payee usage from a transaction. Transfers carry a
// synthetic payee and are not tracked.
func (l *Ledger) touchPayee(t *Transaction) {
	if t.Payee == "" || t.Type == TransactionTypeTransfer {
		return
	}
	p, ok := l.payees[strings.ToLower(t.Payee)]
	if !ok {
		p = &Payee{ID: uuid.NewString(), Name: t.Payee}
		l.payees[strings.ToLower(t.Payee)] = p
	}
	p.UseCount++
	if t.Date.After(p.LastUsedDate) || p.LastUsedDate.IsZero() {
		p.LastUsedDate = t.Date
		p.LastUsedCategory = t.Category
	}
}

func removeTransaction(s []*Transaction, t *Transaction) []*Transaction {
	for i, v := range s {
		if v == t {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeCategory(s []*Category, c *Category) []*Category {
	for i, v := range s {
		if v == c {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func allocationMonth(a *BudgetAllocation) Month {
	if a.Month == nil {
		return Month{}
	}
	return a.Month.Month
}

func allocationCategoryName(a *BudgetAllocation) string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}
