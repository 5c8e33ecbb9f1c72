package http

import (
	"net/http"

	"kopilka/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, user core.User) {
	cats, err := s.ledger.Categories(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, user core.User) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.ledger.CreateCategory(r.Context(), core.Category{
		Name:   req.Name,
		Type:   req.Type,
		Color:  req.Color,
		Icon:   req.Icon,
		UserID: user.ID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, user core.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.ledger.UpdateCategory(r.Context(), core.Category{
		ID:     id,
		Name:   req.Name,
		Type:   req.Type,
		Color:  req.Color,
		Icon:   req.Icon,
		UserID: user.ID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, user core.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.DeleteCategory(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.stats.Invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}
