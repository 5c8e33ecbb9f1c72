package http

import (
	"net/http"

	"kopilka/internal/core"
)

type sessionResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

func toSessionResponse(u core.User) sessionResponse {
	return sessionResponse{ID: u.ID, Email: u.Email, Currency: u.Currency}
}

// requireUser resolves the signed-in user and passes it to the handler.
func (s *Server) requireUser(next func(http.ResponseWriter, *http.Request, core.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.Current()
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request, user core.User) {
	writeJSON(w, http.StatusOK, toSessionResponse(user))
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request, _ core.User) {
	var req currencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Currency == "" {
		writeError(w, http.StatusUnprocessableEntity, "currency cannot be empty")
		return
	}

	updated, err := s.auth.SetCurrency(r.Context(), req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(updated))
}
