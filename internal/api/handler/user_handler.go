package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type UserHandler struct {
	userService *service.UserService
	guard       *middleware.Guard
}

func NewUserHandler(userService *service.UserService, guard *middleware.Guard) *UserHandler {
	return &UserHandler{userService: userService, guard: guard}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(ar chi.Router) {
		ar.Use(h.guard.Authenticator)
		ar.Get("/profile", h.profile)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(h.guard.Authenticator)
		admin.Use(h.guard.RequireRole(model.RoleAdmin))
		admin.Get("/", h.listUsers)
		admin.Patch("/{userID}/fraud", h.flagFraud)
	})
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	user, err := h.userService.Profile(r.Context(), requester, r.URL.Query().Get("email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) flagFraud(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := h.userService.FlagFraud(r.Context(), userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": model.StatusFraud})
}
