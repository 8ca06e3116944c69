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

type MealHandler struct {
	mealService *service.MealService
	guard       *middleware.Guard
}

func NewMealHandler(mealService *service.MealService, guard *middleware.Guard) *MealHandler {
	return &MealHandler{mealService: mealService, guard: guard}
}

func (h *MealHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listMeals)
	r.Get("/{mealID}", h.getMeal)

	r.Group(func(ar chi.Router) {
		ar.Use(h.guard.Authenticator)
		ar.Get("/chef/{email}", h.listByChef)
	})

	// Meal creation is new marketplace activity: chef role plus fraud check.
	r.Group(func(cr chi.Router) {
		cr.Use(h.guard.Authenticator)
		cr.Use(h.guard.RequireRole(model.RoleChef))
		cr.Use(h.guard.RejectFraud)
		cr.Post("/", h.createMeal)
	})

	r.Group(func(dr chi.Router) {
		dr.Use(h.guard.Authenticator)
		dr.Use(h.guard.RequireRole(model.RoleChef))
		dr.Delete("/{mealID}", h.deleteMeal)
	})
}

func (h *MealHandler) createMeal(w http.ResponseWriter, r *http.Request) {
	chef, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.CreateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	meal, err := h.mealService.CreateMeal(r.Context(), chef, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) listMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := h.mealService.ListMeals(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) getMeal(w http.ResponseWriter, r *http.Request) {
	meal, err := h.mealService.GetMeal(r.Context(), chi.URLParam(r, "mealID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) listByChef(w http.ResponseWriter, r *http.Request) {
	meals, err := h.mealService.ListByChef(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) deleteMeal(w http.ResponseWriter, r *http.Request) {
	chef, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	if err := h.mealService.DeleteMeal(r.Context(), chef.Email, chi.URLParam(r, "mealID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
