package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"kopilka/internal/core"
	"kopilka/internal/services"
	"kopilka/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service and store errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotSignedIn):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Store operation failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "record store unavailable")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidType,
		core.ErrInvalidAmount,
		core.ErrMissingCategory,
		core.ErrInvalidDate,
		core.ErrEmptyName,
		core.ErrUnknownIcon,
		core.ErrEmptyEmail,
		core.ErrMalformedEmail,
		core.ErrEmptyPassword,
		core.ErrZeroRate,
		services.ErrCategoryNotFound,
		services.ErrTypeMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
