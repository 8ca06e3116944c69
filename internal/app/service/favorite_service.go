package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	mealRepo     repository.MealRepository
	log          zerolog.Logger
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, mealRepo repository.MealRepository, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		mealRepo:     mealRepo,
		log:          log.With().Str("service", "favorite").Logger(),
	}
}

// AddFavorite records a favorite once per (user, meal) pair. Re-adding an
// existing favorite reports alreadyExists instead of duplicating.
func (s *FavoriteService) AddFavorite(ctx context.Context, userEmail, mealID string) (fav *model.Favorite, alreadyExists bool, err error) {
	if _, err := s.mealRepo.FindByID(ctx, mealID); err != nil {
		return nil, false, fmt.Errorf("meal lookup: %w", err)
	}

	fav = &model.Favorite{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		MealID:    mealID,
		AddedTime: time.Now().UTC(),
	}
	if err := s.favoriteRepo.Insert(ctx, fav); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return fav, false, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userEmail, mealID string) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userEmail, mealID)
}

func (s *FavoriteService) ListForUser(ctx context.Context, email string) ([]model.Favorite, error) {
	return s.favoriteRepo.FindByUserEmail(ctx, email)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, id string) error {
	return s.favoriteRepo.Delete(ctx, id)
}
