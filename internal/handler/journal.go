package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daybook/daybook-go/internal/middleware"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/service"
)

// JournalHandler handles HTTP requests for journal entries.
type JournalHandler struct {
	journals *service.JournalService
	tags     *service.TagService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journals *service.JournalService, tags *service.TagService) *JournalHandler {
	return &JournalHandler{journals: journals, tags: tags}
}

// HandleList handles GET / and GET /entries requests. Open to anonymous
// callers.
func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journals.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleGet handles GET /entries/{slug} requests.
func (h *JournalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.journals.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrJournalNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleNewForm handles GET /entry requests with the tag choices a client
// needs to render the creation form.
func (h *JournalHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"fields": []string{"title", "date", "time_spent", "learned", "resources", "tags"},
		"tags":   tags,
	})
}

// HandleCreate handles POST /entry requests.
func (h *JournalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.JournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.journals.Create(r.Context(), userID, req)
	if err != nil {
		if !writeValidationError(w, err) {
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// HandleEditForm handles GET /entries/edit/{slug} requests, returning the
// current entry so the client can prefill the edit form.
func (h *JournalHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	entry, err := h.journals.GetOwned(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrJournalNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleUpdate handles POST /entries/edit/{slug} requests.
func (h *JournalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.JournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.journals.Update(r.Context(), userID, chi.URLParam(r, "slug"), req)
	if err != nil {
		switch {
		case writeValidationError(w, err):
		case errors.Is(err, service.ErrJournalNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDeleteForm handles GET /entries/delete/{slug} requests, returning
// the entry so the client can render a confirmation view.
func (h *JournalHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	h.HandleEditForm(w, r)
}

// HandleDelete handles POST /entries/delete/{slug} requests. Deletion is
// idempotent: an absent slug still succeeds.
func (h *JournalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if err := h.journals.Delete(r.Context(), userID, chi.URLParam(r, "slug")); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
