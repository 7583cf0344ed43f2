package budget

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. It is the unit all budgeting math is
// keyed on: allocations, activity windows, and the to-budget cutoff. The
// zero value is not a valid month.
//
// A Month is comparable, so it can be used directly as a map key. Any
// timestamp is normalized to its (year, month) pair on construction, which
// makes month-equality checks plain value equality rather than range
// containment.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth creates a Month from a year and month.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a month in "YYYY-MM" format.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return MonthOf(t), nil
}

// Start returns the first instant of the month in UTC. This is the
// canonical timestamp a month is serialized as.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

// Prev returns the preceding calendar month.
func (m Month) Prev() Month {
	return MonthOf(m.Start().AddDate(0, -1, 0))
}

// Contains reports whether t falls within the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Before reports whether m is strictly before o.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// After reports whether m is strictly after o.
func (m Month) After(o Month) bool {
	return o.Before(m)
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// String returns the month in "YYYY-MM" format.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
