// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/idea-board/middleware"
	"github.com/danielhkuo/idea-board/models"
	"github.com/danielhkuo/idea-board/store"
)

var validate = validator.New()

// maxBodyBytes bounds POST bodies; an idea is a few hundred characters at most.
const maxBodyBytes = 64 << 10

type IdeaHandler struct {
	store store.Store
}

func NewIdeaHandler(st store.Store) *IdeaHandler {
	return &IdeaHandler{store: st}
}

// ListIdeas handles GET /ideas/
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to list ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ideas)
}

// CreateIdea handles POST /ideas/
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIdeaRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		middleware.FieldErrorResponse(w, "text", "This field is required.")
		return
	}

	idea, err := h.store.Create(r.Context(), *req.Text)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			middleware.FieldErrorResponse(w, verr.Field, verr.Message)
			return
		}
		slog.Error("failed to create idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create idea")
		return
	}

	slog.Info("idea created", "idea_id", idea.ID)

	middleware.JSONResponse(w, http.StatusCreated, idea)
}

// GetIdea handles GET /ideas/{id}/
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	idea, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to get idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, idea)
}

// UpvoteIdea handles PATCH /ideas/{id}/upvote/
func (h *IdeaHandler) UpvoteIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	idea, err := h.store.Upvote(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to upvote idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upvote idea")
		return
	}

	slog.Info("idea upvoted", "idea_id", id, "upvotes", idea.Upvotes)

	middleware.JSONResponse(w, http.StatusOK, idea)
}

// DeleteIdea handles DELETE /ideas/{id}/
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := ideaID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to delete idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete idea")
		return
	}

	slog.Info("idea deleted", "idea_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// ideaID parses the {id} path value. Anything that is not a positive
// integer cannot name an idea, so it is reported as not found.
func ideaID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}
