package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	guard           *middleware.Guard
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, guard *middleware.Guard) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, guard: guard}
}

func (h *FavoriteHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.guard.Authenticator)
	r.Post("/", h.addFavorite)
	r.Get("/check", h.checkFavorite)
	r.Get("/user/{email}", h.listForUser)
	r.Delete("/{favoriteID}", h.removeFavorite)
}

func (h *FavoriteHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req struct {
		MealID string `json:"meal_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	fav, exists, err := h.favoriteService.AddFavorite(r.Context(), email, req.MealID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if exists {
		common.RespondWithJSON(w, http.StatusOK, map[string]bool{"exists": true})
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, fav)
}

func (h *FavoriteHandler) checkFavorite(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(r.Context(), email, r.URL.Query().Get("meal_id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.ListForUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, favorites)
}

func (h *FavoriteHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favoriteService.RemoveFavorite(r.Context(), chi.URLParam(r, "favoriteID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
