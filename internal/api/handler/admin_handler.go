package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type AdminHandler struct {
	statsService *service.StatsService
	guard        *middleware.Guard
}

func NewAdminHandler(statsService *service.StatsService, guard *middleware.Guard) *AdminHandler {
	return &AdminHandler{statsService: statsService, guard: guard}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.guard.Authenticator)
	r.Use(h.guard.RequireRole(model.RoleAdmin))
	r.Get("/", h.stats)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.AdminStats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
