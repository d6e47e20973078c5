package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ideapool/backend/internal/middleware"
	"github.com/ideapool/backend/internal/store"
	"github.com/ideapool/backend/internal/validate"
)

type ideaRequest struct {
	Content    string `json:"content"`
	Impact     int    `json:"impact"`
	Ease       int    `json:"ease"`
	Confidence int    `json:"confidence"`
}

// ListIdeas handles GET /ideas?page=N. Garbage or missing page values
// degrade to page 1; pages past the end return an empty array.
func (h *Handler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	page := parsePage(r.URL.Query().Get("page"))

	ideas, err := h.ideas.List(r.Context(), userID, page)
	if err != nil {
		h.internalError(w, "ideas: list failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, ideas)
}

// CreateIdea handles POST /ideas.
func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	var req ideaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, nil)
		return
	}
	content, errs := validate.Idea(req.Content, req.Impact, req.Ease, req.Confidence)
	if len(errs) > 0 {
		h.badRequest(w, errs)
		return
	}

	idea, err := h.ideas.Create(r.Context(), userID, content, req.Impact, req.Ease, req.Confidence)
	if err != nil {
		h.internalError(w, "ideas: create failed", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, idea)
}

// UpdateIdea handles PUT /ideas/{id}. An idea owned by another user is
// indistinguishable from a nonexistent one.
func (h *Handler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	ideaID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.notFound(w)
		return
	}

	var req ideaRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, nil)
		return
	}
	content, errs := validate.Idea(req.Content, req.Impact, req.Ease, req.Confidence)
	if len(errs) > 0 {
		h.badRequest(w, errs)
		return
	}

	idea, err := h.ideas.Update(r.Context(), ideaID, userID, content, req.Impact, req.Ease, req.Confidence)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.internalError(w, "ideas: update failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, idea)
}

// DeleteIdea handles DELETE /ideas/{id}, with the same ownership opacity
// as UpdateIdea.
func (h *Handler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.unauthorized(w)
		return
	}

	ideaID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.notFound(w)
		return
	}

	err := h.ideas.Delete(r.Context(), ideaID, userID)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.internalError(w, "ideas: delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parsePage never fails: non-numeric, absent or non-positive values all
// mean the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
