package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"kopilka/internal/core"
	"kopilka/internal/services"
	"kopilka/internal/session"
	"kopilka/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.New()
	sessions := session.NewManager(filepath.Join(t.TempDir(), "session.json"))
	auth := services.NewAuthService(st, st, sessions)
	ledger := services.NewLedgerService(st, nil, core.DefaultRates())
	stats := services.NewStatsService(st, core.DefaultRates())
	s := NewServer(":0", auth, ledger, stats)
	t.Cleanup(func() { s.limiter.Stop() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, s *Server) sessionResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/register", map[string]string{
		"email": "a@b.com", "password": "secret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	// Protected endpoints reject anonymous requests
	rec := doJSON(t, s, http.MethodGet, "/api/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous session status = %d, want 401", rec.Code)
	}

	user := register(t, s)
	if user.Currency != core.BaseCurrency {
		t.Errorf("currency = %q, want %q", user.Currency, core.BaseCurrency)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/logout", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/login", map[string]string{
		"email": "a@b.com", "password": "nope",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/login", map[string]string{
		"email": "a@b.com", "password": "secret",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d: %s", rec.Code, rec.Body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	register(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/register", map[string]string{
		"email": "a@b.com", "password": "other",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/register", map[string]string{
		"email": "not-an-email", "password": "secret",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestSetCurrency(t *testing.T) {
	s := newTestServer(t)
	register(t, s)

	rec := doJSON(t, s, http.MethodPut, "/api/currency", map[string]string{"currency": "RUB"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Currency != "RUB" {
		t.Errorf("currency = %q, want RUB", resp.Currency)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimitOnBurst(t *testing.T) {
	s := newTestServer(t)

	limited := false
	for i := 0; i < 80; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		rec := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst of 80 requests was never rate limited")
	}
}
