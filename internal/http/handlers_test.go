package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"kopilka/internal/core"
	"kopilka/internal/derive"
)

func createCategory(t *testing.T, s *Server, name string, catType core.TransactionType) core.Category {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/categories", map[string]any{
		"name": name, "type": catType, "icon": "other",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category status = %d: %s", rec.Code, rec.Body)
	}
	var cat core.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	return cat
}

func createTransaction(t *testing.T, s *Server, catID int64, catType core.TransactionType, amount float64, date string) core.Transaction {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"type": catType, "amount": amount, "categoryId": catID, "date": date,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d: %s", rec.Code, rec.Body)
	}
	var txn core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txn); err != nil {
		t.Fatalf("decode transaction: %v", err)
	}
	return txn
}

func TestCategoryCRUD(t *testing.T) {
	s := newTestServer(t)
	register(t, s)

	cat := createCategory(t, s, "Продукты", core.Expense)
	if cat.Color != core.DefaultColor {
		t.Errorf("color = %q, want default", cat.Color)
	}

	rec := doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), map[string]any{
		"name": "Еда", "type": core.Expense, "icon": "food", "color": "#f44336",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var cats []core.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	// 10 starter categories plus the one created here
	if len(cats) != 11 {
		t.Fatalf("len = %d, want 11", len(cats))
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCategoryValidation(t *testing.T) {
	s := newTestServer(t)
	register(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/categories", map[string]any{
		"name": "", "type": core.Expense,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty name status = %d, want 422", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/categories", map[string]any{
		"name": "X", "type": core.Expense, "icon": "no-such-icon",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown icon status = %d, want 422", rec.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestServer(t)
	register(t, s)
	cat := createCategory(t, s, "Продукты", core.Expense)

	txn := createTransaction(t, s, cat.ID, core.Expense, 150, "2024-01-05")

	rec := doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/transactions/%d", txn.ID), map[string]any{
		"type": core.Expense, "amount": 200.0, "categoryId": cat.ID, "date": "2024-01-06", "comment": "updated",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}
	var updated core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Amount != 200 || updated.Comment != "updated" {
		t.Errorf("updated = %+v", updated)
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", txn.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestTransactionTypeMismatchRejected(t *testing.T) {
	s := newTestServer(t)
	register(t, s)
	cat := createCategory(t, s, "Продукты", core.Expense)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"type": core.Income, "amount": 10.0, "categoryId": cat.ID, "date": "2024-01-05",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestListTransactionsFiltered(t *testing.T) {
	s := newTestServer(t)
	register(t, s)
	food := createCategory(t, s, "Продукты", core.Expense)
	salary := createCategory(t, s, "Работа", core.Income)

	createTransaction(t, s, salary.ID, core.Income, 500, "2024-01-10")
	createTransaction(t, s, food.ID, core.Expense, 100, "2024-01-11")
	createTransaction(t, s, food.ID, core.Expense, 50, "2024-01-12")

	rec := doJSON(t, s, http.MethodGet, "/api/transactions?tab=expense&startDate=2024-01-12", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d: %s", rec.Code, rec.Body)
	}
	var txns []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txns); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txns) != 1 || txns[0].Amount != 50 {
		t.Errorf("txns = %+v, want only the Jan 12 expense", txns)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?tab=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid tab status = %d, want 400", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	register(t, s)
	food := createCategory(t, s, "Продукты", core.Expense)
	salary := createCategory(t, s, "Работа", core.Income)

	createTransaction(t, s, salary.ID, core.Income, 500, "2024-01-10")
	createTransaction(t, s, food.ID, core.Expense, 100, "2024-01-11")
	createTransaction(t, s, food.ID, core.Expense, 50, "2024-01-12")

	rec := doJSON(t, s, http.MethodGet, "/api/stats?currency=RUB", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d: %s", rec.Code, rec.Body)
	}
	var view derive.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	totals := view.Breakdown.Totals
	if totals.Income != 500 || totals.Expense != 150 || totals.Balance != 350 {
		t.Errorf("totals = %+v, want 500/150/350", totals)
	}
	if view.Currency != "RUB" {
		t.Errorf("currency = %q, want RUB", view.Currency)
	}
	// Display figures converted at factor 0.2
	if view.Display.Totals.Income != 100 || view.Display.Totals.Expense != 30 {
		t.Errorf("display totals = %+v, want 100/30", view.Display.Totals)
	}
}

func TestStatsReflectsMutations(t *testing.T) {
	s := newTestServer(t)
	register(t, s)
	food := createCategory(t, s, "Продукты", core.Expense)

	txn := createTransaction(t, s, food.ID, core.Expense, 100, "2024-01-11")

	rec := doJSON(t, s, http.MethodGet, "/api/stats", nil)
	var before derive.View
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if before.Breakdown.Totals.Expense != 100 {
		t.Fatalf("expense = %v, want 100", before.Breakdown.Totals.Expense)
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", txn.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/stats", nil)
	var after derive.View
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if after.Breakdown.Totals.Expense != 0 {
		t.Errorf("expense after delete = %v, want 0", after.Breakdown.Totals.Expense)
	}
}
