package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type RoleRequestHandler struct {
	requestService *service.RoleRequestService
	guard          *middleware.Guard
	limit          func(http.Handler) http.Handler
}

func NewRoleRequestHandler(
	requestService *service.RoleRequestService,
	guard *middleware.Guard,
	limit func(http.Handler) http.Handler,
) *RoleRequestHandler {
	return &RoleRequestHandler{requestService: requestService, guard: guard, limit: limit}
}

func (h *RoleRequestHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(sr chi.Router) {
		sr.Use(h.guard.Authenticator)
		sr.Use(h.limit)
		sr.Post("/", h.submit)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(h.guard.Authenticator)
		admin.Use(h.guard.RequireRole(model.RoleAdmin))
		admin.Get("/", h.list)
		admin.Patch("/{requestID}/approve", h.approve)
		admin.Patch("/{requestID}/reject", h.reject)
	})
}

func (h *RoleRequestHandler) submit(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	request, err := h.requestService.Submit(r.Context(), email, req.Role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *RoleRequestHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		requests []model.RoleRequest
		err      error
	)
	if r.URL.Query().Get("status") == model.RequestPending {
		requests, err = h.requestService.ListPending(r.Context())
	} else {
		requests, err = h.requestService.ListAll(r.Context())
	}
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *RoleRequestHandler) approve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	chefID, err := h.requestService.Approve(r.Context(), chi.URLParam(r, "requestID"), req.Role, req.Email)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	resp := map[string]interface{}{"success": true}
	if chefID != nil {
		resp["chef_id"] = *chefID
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *RoleRequestHandler) reject(w http.ResponseWriter, r *http.Request) {
	if err := h.requestService.Reject(r.Context(), chi.URLParam(r, "requestID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
