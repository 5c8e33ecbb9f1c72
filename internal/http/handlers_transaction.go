package http

import (
	"net/http"

	"kopilka/internal/core"
)

// handleListTransactions returns the user's transactions narrowed by
// the filter criteria from the query string, most recent first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, user core.User) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := s.ledger.Transactions(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.Filter(txns, criteria))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, user core.User) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), core.Transaction{
		Type:       req.Type,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Comment:    req.Comment,
		UserID:     user.ID,
	}, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, user core.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.ledger.UpdateTransaction(r.Context(), core.Transaction{
		ID:         id,
		Type:       req.Type,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Comment:    req.Comment,
		UserID:     user.ID,
	}, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, user core.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}
