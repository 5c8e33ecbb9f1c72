package http

import (
	"net/http"
	"strings"

	"kopilka/internal/core"
)

// handleStats returns the derived view: the filtered transactions, the
// base-currency breakdown and the breakdown in the display currency.
// The currency falls back to the user's preference.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, user core.User) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	currency := strings.TrimSpace(r.URL.Query().Get("currency"))
	if currency == "" {
		currency = user.Currency
	}

	view, err := s.stats.Overview(r.Context(), user.ID, criteria, currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
