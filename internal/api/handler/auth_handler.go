package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
)

type AuthHandler struct {
	authService *service.AuthService
	limit       func(http.Handler) http.Handler
}

func NewAuthHandler(authService *service.AuthService, limit func(http.Handler) http.Handler) *AuthHandler {
	return &AuthHandler{authService: authService, limit: limit}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Group(func(lr chi.Router) {
		lr.Use(h.limit)
		lr.Post("/token", h.token)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := h.authService.IssueToken(r.Context(), req.Email)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}
