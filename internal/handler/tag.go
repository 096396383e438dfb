package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daybook/daybook-go/internal/middleware"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/service"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service *service.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{service: svc}
}

// HandleList handles GET /tags requests. Open to anonymous callers.
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// HandleJournals handles GET /tags/{slug} requests, listing the entries
// filed under one tag.
func (h *TagHandler) HandleJournals(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Journals(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleNewForm handles GET /addtag requests.
func (h *TagHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": []string{"title"}})
}

// HandleCreate handles POST /addtag requests.
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.TagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tag, err := h.service.Create(r.Context(), req)
	if err != nil {
		if !writeValidationError(w, err) {
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}
