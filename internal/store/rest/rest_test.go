package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kopilka/internal/core"
	"kopilka/internal/store"
)

func TestFindByCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %q, want /users", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("email") != "a@b.com" || q.Get("password") != "secret" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode([]core.User{{ID: 7, Email: "a@b.com", Currency: "KZT"}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	u, err := c.FindByCredentials(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("FindByCredentials: %v", err)
	}
	if u == nil || u.ID != 7 {
		t.Errorf("user = %+v, want id 7", u)
	}
}

func TestFindByCredentials_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]core.User{})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	u, err := c.FindByCredentials(context.Background(), "a@b.com", "wrong")
	if err != nil {
		t.Fatalf("FindByCredentials: %v", err)
	}
	if u != nil {
		t.Errorf("user = %+v, want nil", u)
	}
}

func TestSetCurrency_PatchesPartialBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/users/3" {
			t.Errorf("path = %q, want /users/3", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body) != 1 || body["currency"] != "RUB" {
			t.Errorf("body = %v, want only currency", body)
		}
		json.NewEncoder(w).Encode(core.User{ID: 3, Email: "a@b.com", Currency: "RUB"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	u, err := c.SetCurrency(context.Background(), 3, "RUB")
	if err != nil {
		t.Fatalf("SetCurrency: %v", err)
	}
	if u.Currency != "RUB" {
		t.Errorf("currency = %q, want RUB", u.Currency)
	}
}

func TestListTransactions_ScopedByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "5" {
			t.Errorf("userId = %q, want 5", got)
		}
		json.NewEncoder(w).Encode([]core.Transaction{
			{ID: 1, Type: core.Expense, Amount: 100, CategoryID: 2, UserID: 5},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	txns, err := c.ListTransactions(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 || txns[0].Amount != 100 {
		t.Errorf("txns = %+v", txns)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	err := c.DeleteCategory(context.Background(), 99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want store.ErrNotFound", err)
	}
}

func TestCreateCategory_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.CreateCategory(context.Background(), core.Category{Name: "x", Type: core.Expense, Icon: "other"})
	if err == nil {
		t.Fatal("expected error on 500")
	}
}
