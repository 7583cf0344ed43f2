package budget

import "time"

// Payee tracks how often and how recently a payee name was used, and which
// category it was last filed under. The entry form uses this to pre-fill a
// category for a known payee.
type Payee struct {
	ID           string
	Name         string
	LastUsedDate time.Time
	UseCount     int

	// LastUsedCategory is the category of the most recent transaction for
	// this payee. Nil when the payee has only appeared uncategorized.
	LastUsedCategory *Category
}
