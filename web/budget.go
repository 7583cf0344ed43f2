package web

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/envelope/budget"
)

// CategoryRow is one envelope's figures for the requested month.
type CategoryRow struct {
	Name      string          `json:"name"`
	Parent    string          `json:"parent,omitempty"`
	Emoji     string          `json:"emoji,omitempty"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Activity  decimal.Decimal `json:"activity"`
	Available decimal.Decimal `json:"available"`
}

// BudgetResponse is the JSON response structure for the budget endpoint.
type BudgetResponse struct {
	Month         string          `json:"month"`
	Categories    []CategoryRow   `json:"categories"`
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	ToBudget      decimal.Decimal `json:"toBudget"`
	Currency      string          `json:"currency"`
}

// handleGetBudget handles GET requests to /api/budget.
//
// Query parameters:
//   - month: Month in YYYY-MM format. Defaults to the current month.
func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]CategoryRow, 0, len(s.ledger.Categories()))
	for _, c := range s.ledger.Categories() {
		if c.IsHeader || c.IsSystem || c.IsHidden {
			continue
		}
		rows = append(rows, CategoryRow{
			Name:      c.Name,
			Parent:    c.ParentName(),
			Emoji:     c.Emoji,
			Budgeted:  s.ledger.Budgeted(c, month),
			Activity:  s.ledger.Activity(c, month),
			Available: s.ledger.Available(c, month),
		})
	}

	writeJSONResponse(w, &BudgetResponse{
		Month:         month.String(),
		Categories:    rows,
		TotalBudgeted: s.ledger.TotalBudgeted(month),
		ToBudget:      s.ledger.ToBudget(month),
		Currency:      s.Currency,
	})
}

// monthParam parses the month query parameter, defaulting to the current
// month. Writes a 400 response and returns false on a malformed value.
func monthParam(w http.ResponseWriter, r *http.Request) (budget.Month, bool) {
	param := r.URL.Query().Get("month")
	if param == "" {
		return budget.MonthOf(time.Now()), true
	}
	month, err := budget.ParseMonth(param)
	if err != nil {
		http.Error(w, "invalid month format (expected YYYY-MM): "+param, http.StatusBadRequest)
		return budget.Month{}, false
	}
	return month, true
}
