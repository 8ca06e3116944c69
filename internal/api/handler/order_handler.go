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

type OrderHandler struct {
	orderService *service.OrderService
	guard        *middleware.Guard
}

func NewOrderHandler(orderService *service.OrderService, guard *middleware.Guard) *OrderHandler {
	return &OrderHandler{orderService: orderService, guard: guard}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	// Order placement is new marketplace activity: user role plus fraud check.
	r.Group(func(pr chi.Router) {
		pr.Use(h.guard.Authenticator)
		pr.Use(h.guard.RequireRole(model.RoleUser))
		pr.Use(h.guard.RejectFraud)
		pr.Post("/", h.placeOrder)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(h.guard.Authenticator)
		ar.Get("/user/{email}", h.listForUser)
		ar.Patch("/{orderID}/payment", h.markPaid)
	})

	r.Group(func(cr chi.Router) {
		cr.Use(h.guard.Authenticator)
		cr.Use(h.guard.RequireRole(model.RoleChef))
		cr.Get("/chef/{chefID}", h.listForChef)
		cr.Patch("/{orderID}/status", h.updateStatus)
	})
}

func (h *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), email, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	orders, err := h.orderService.ListForUser(r.Context(), email, chi.URLParam(r, "email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) listForChef(w http.ResponseWriter, r *http.Request) {
	chef, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	orders, err := h.orderService.ListForChef(r.Context(), chef, chi.URLParam(r, "chefID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"order_status": req.Status})
}

func (h *OrderHandler) markPaid(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.MarkPaid(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"payment_status": model.PaymentPaid})
}
