// Package http exposes the JSON API.
package http

import (
	"context"
	"net/http"
	"sync"

	"kopilka/internal/middleware/ratelimit"
	"kopilka/internal/middleware/security"
	"kopilka/internal/middleware/trace"
	"kopilka/internal/services"
)

type Server struct {
	http.Server

	auth   *services.AuthService
	ledger *services.LedgerService
	stats  *services.StatsService

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, auth *services.AuthService, ledger *services.LedgerService, stats *services.StatsService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		auth:    auth,
		ledger:  ledger,
		stats:   stats,
		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.requireUser(s.handleSession))
	mux.HandleFunc("PUT /api/currency", s.requireUser(s.handleSetCurrency))

	mux.HandleFunc("GET /api/categories", s.requireUser(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.requireUser(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.requireUser(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.requireUser(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/transactions", s.requireUser(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireUser(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.requireUser(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireUser(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/stats", s.requireUser(s.handleStats))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(extractClientIP)
	limited := s.limiter.Middleware(extractClientIP, nil)

	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(headers.Middleware(limited(mux))),
	}

	return s
}

// Shutdown stops the HTTP server and the limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func extractClientIP(r *http.Request) string {
	clientIP := r.Header.Get("X-Forwarded-For")
	if clientIP == "" {
		clientIP = r.Header.Get("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = r.RemoteAddr
	}
	return clientIP
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
