package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/envelope/backup"
	"github.com/robinvdvleuten/envelope/budget"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testServer builds a server around an in-memory ledger with one budget
// month of activity.
func testServer(t *testing.T) *Server {
	t.Helper()

	l := budget.New()

	checking := &budget.Account{Name: "Checking", Type: budget.AccountTypeCurrent, OnBudget: true}
	savings := &budget.Account{Name: "Savings", Type: budget.AccountTypeSavings, SortOrder: 1}
	assert.NoError(t, l.AddAccount(checking))
	assert.NoError(t, l.AddAccount(savings))

	system := &budget.Category{Name: "To Budget", IsSystem: true}
	groceries := &budget.Category{Name: "Groceries", Emoji: "🛒", SortOrder: 1}
	assert.NoError(t, l.AddCategory(system))
	assert.NoError(t, l.AddCategory(groceries))

	jan := budget.NewMonth(2026, time.January)
	assert.NoError(t, l.AddBudgetMonth(&budget.BudgetMonth{Month: jan}))
	bm, _ := l.BudgetMonth(jan)
	_, err := l.SetAllocation(groceries, bm, dec("300"))
	assert.NoError(t, err)

	assert.NoError(t, l.AddTransaction(&budget.Transaction{
		Amount: dec("1000"), Payee: "Employer", Date: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		Type: budget.TransactionTypeIncome, Account: checking, Category: system,
	}))
	assert.NoError(t, l.AddTransaction(&budget.Transaction{
		Amount: dec("80"), Payee: "Tesco", Date: time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
		Type: budget.TransactionTypeExpense, Account: checking, Category: groceries,
	}))

	s := New(0, "unused.json")
	s.ledger = l
	return s
}

func TestHandleGetAccounts(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rec := httptest.NewRecorder()
	s.handleGetAccounts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp AccountsResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, len(resp.Accounts))
	assert.Equal(t, "Checking", resp.Accounts[0].Name)
	assert.True(t, resp.Accounts[0].OnBudget)
	assert.True(t, resp.Accounts[0].Balance.Equal(dec("920")))
	assert.Equal(t, "Savings", resp.Accounts[1].Name)
	assert.True(t, resp.Accounts[1].Balance.IsZero())
}

func TestHandleGetBudget(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/budget?month=2026-01", nil)
	rec := httptest.NewRecorder()
	s.handleGetBudget(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp BudgetResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-01", resp.Month)
	assert.Equal(t, 1, len(resp.Categories))
	assert.Equal(t, "Groceries", resp.Categories[0].Name)
	assert.True(t, resp.Categories[0].Budgeted.Equal(dec("300")))
	assert.True(t, resp.Categories[0].Activity.Equal(dec("-80")))
	assert.True(t, resp.Categories[0].Available.Equal(dec("220")))
	assert.True(t, resp.ToBudget.Equal(dec("700")))
	assert.True(t, resp.TotalBudgeted.Equal(dec("300")))
}

func TestHandleGetBudgetInvalidMonth(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/budget?month=January", nil)
	rec := httptest.NewRecorder()
	s.handleGetBudget(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetAverages(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/averages?month=2026-02&window=3", nil)
	rec := httptest.NewRecorder()
	s.handleGetAverages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AveragesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02", resp.Month)
	assert.Equal(t, 3, resp.Window)
	assert.Equal(t, 1, len(resp.Categories))
	assert.Equal(t, "Groceries", resp.Categories[0].Name)
	assert.True(t, resp.Categories[0].AvgSpent.Equal(dec("80")))
	assert.True(t, resp.Categories[0].AvgBudgeted.Equal(dec("300")))
}

func TestHandleGetAveragesDefaultWindow(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/averages?month=2026-02", nil)
	rec := httptest.NewRecorder()
	s.handleGetAverages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AveragesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Window)
	assert.Equal(t, 1, len(resp.Categories))
}

func TestHandleGetAveragesInvalidWindow(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/averages?window=0", nil)
	rec := httptest.NewRecorder()
	s.handleGetAverages(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReloadSnapshot(t *testing.T) {
	source := testServer(t)

	file := filepath.Join(t.TempDir(), "snapshot.json")
	assert.NoError(t, backup.WriteFile(file, source.ledger))

	s := New(0, file)
	assert.NoError(t, s.reloadSnapshot(context.Background()))

	account, ok := s.ledger.FindAccount("Checking")
	assert.True(t, ok)
	assert.True(t, s.ledger.Balance(account).Equal(dec("920")))
}

func TestRouterRejectsUnknownPath(t *testing.T) {
	s := testServer(t)

	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/unknown")
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
