package web

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// AccountInfo is the wire form of an account with its derived balance.
type AccountInfo struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	OnBudget bool            `json:"onBudget"`
	Balance  decimal.Decimal `json:"balance"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns all accounts in sort order with their running balances.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]AccountInfo, 0, len(s.ledger.Accounts()))
	for _, a := range s.ledger.Accounts() {
		accounts = append(accounts, AccountInfo{
			Name:     a.Name,
			Type:     a.Type.String(),
			OnBudget: a.OnBudget,
			Balance:  s.ledger.Balance(a),
		})
	}

	writeJSONResponse(w, &AccountsResponse{Accounts: accounts})
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
