package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

type MealService struct {
	mealRepo repository.MealRepository
	log      zerolog.Logger
}

func NewMealService(mealRepo repository.MealRepository, log zerolog.Logger) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		log:      log.With().Str("service", "meal").Logger(),
	}
}

type CreateMealRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

func (s *MealService) CreateMeal(ctx context.Context, chef *model.User, req CreateMealRequest) (*model.Meal, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", common.ErrValidation)
	}

	meal := &model.Meal{
		ID:          uuid.NewString(),
		ChefEmail:   chef.Email,
		ChefName:    chef.Name,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, err
	}

	s.log.Info().Str("meal_id", meal.ID).Str("chef", chef.Email).Msg("meal created")
	return meal, nil
}

func (s *MealService) ListMeals(ctx context.Context) ([]model.Meal, error) {
	return s.mealRepo.FindAll(ctx)
}

func (s *MealService) GetMeal(ctx context.Context, id string) (*model.Meal, error) {
	return s.mealRepo.FindByID(ctx, id)
}

func (s *MealService) ListByChef(ctx context.Context, chefEmail string) ([]model.Meal, error) {
	return s.mealRepo.FindByChefEmail(ctx, chefEmail)
}

// DeleteMeal removes a meal; chefs may only delete their own.
func (s *MealService) DeleteMeal(ctx context.Context, chefEmail, id string) error {
	meal, err := s.mealRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if meal.ChefEmail != chefEmail {
		return common.ErrForbidden
	}
	return s.mealRepo.Delete(ctx, id)
}
