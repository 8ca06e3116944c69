package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	guard         *middleware.Guard
}

func NewReviewHandler(reviewService *service.ReviewService, guard *middleware.Guard) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, guard: guard}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/meal/{mealID}", h.listByMeal)

	r.Group(func(ar chi.Router) {
		ar.Use(h.guard.Authenticator)
		ar.Post("/", h.createReview)
		ar.Get("/user/{email}", h.listByUser)
		ar.Put("/{reviewID}", h.updateReview)
		ar.Delete("/{reviewID}", h.deleteReview)
	})
}

func (h *ReviewHandler) createReview(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), email, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) listByMeal(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListByMeal(r.Context(), chi.URLParam(r, "mealID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListByUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) updateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Review string `json:"review"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.reviewService.UpdateReview(r.Context(), chi.URLParam(r, "reviewID"), req.Review, req.Rating); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *ReviewHandler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.reviewService.DeleteReview(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
