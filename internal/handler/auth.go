package handler

import (
	"errors"
	"net/http"

	"github.com/daybook/daybook-go/internal/middleware"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/repository"
	"github.com/daybook/daybook-go/internal/service"
)

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegisterForm handles GET /register requests with the form fields a
// client needs to render.
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": []string{"email", "password", "password2"}})
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		if !writeValidationError(w, err) {
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLoginForm handles GET /login requests.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": []string{"email", "password"}})
}

// HandleLogin handles POST /login requests. Unknown email and wrong password
// produce the identical response.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case writeValidationError(w, err):
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles GET /logout requests. Tokens are stateless, so the
// server resolves the principal one last time and acknowledges; the client
// discards the token.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if _, err := h.service.GetUser(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Token outlived the account; the session is anonymous.
			writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
