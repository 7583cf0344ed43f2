package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

// AverageRow is one category's quick-fill averages.
type AverageRow struct {
	Name        string          `json:"name"`
	Parent      string          `json:"parent,omitempty"`
	AvgSpent    decimal.Decimal `json:"avgSpent"`
	AvgBudgeted decimal.Decimal `json:"avgBudgeted"`
}

// AveragesResponse is the JSON response structure for the averages endpoint.
type AveragesResponse struct {
	Month      string       `json:"month"`
	Window     int          `json:"window"`
	Categories []AverageRow `json:"categories"`
}

// handleGetAverages handles GET requests to /api/averages.
//
// Query parameters:
//   - month: Month the window ends before (YYYY-MM). Defaults to the current month.
//   - window: Number of months to look back. Defaults to 12.
func (s *Server) handleGetAverages(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	window := 12
	if param := r.URL.Query().Get("window"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid window (expected a positive integer): "+param, http.StatusBadRequest)
			return
		}
		window = parsed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]AverageRow, 0, len(s.ledger.Categories()))
	for _, c := range s.ledger.Categories() {
		if c.IsHeader || c.IsSystem || c.IsHidden {
			continue
		}
		spent := s.ledger.AverageMonthlySpending(c, month, window)
		budgeted := s.ledger.AverageMonthlyBudgeted(c, month, window)
		if spent.IsZero() && budgeted.IsZero() {
			continue
		}
		rows = append(rows, AverageRow{
			Name:        c.Name,
			Parent:      c.ParentName(),
			AvgSpent:    spent,
			AvgBudgeted: budgeted,
		})
	}

	writeJSONResponse(w, &AveragesResponse{
		Month:      month.String(),
		Window:     window,
		Categories: rows,
	})
}
