package budget

// Category is a budget envelope. Categories form a two-level tree: headers
// are grouping nodes that cannot be budgeted against directly, leaves carry
// allocations and transactions.
//
// Exactly one category in a ledger is the system category (the "unassigned
// income" pseudo-envelope). It is never user-edited and income parked there
// counts toward the to-budget figure rather than any envelope.
type Category struct {
	ID        string
	Name      string
	Emoji     string
	IsHeader  bool
	IsSystem  bool
	IsHidden  bool
	SortOrder int

	// Parent is set only on leaves, and always points at a header.
	// Children are reachable through Ledger.Children, not stored here,
	// so the entity graph stays acyclic.
	Parent *Category
}

// IsLeaf reports whether the category can be budgeted against.
func (c *Category) IsLeaf() bool {
	return !c.IsHeader
}

// ParentName returns the parent header's name, or "" for headers and
// top-level leaves.
func (c *Category) ParentName() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.Name
}
