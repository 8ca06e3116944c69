package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	mealRepo   repository.MealRepository
	log        zerolog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, mealRepo repository.MealRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		mealRepo:   mealRepo,
		log:        log.With().Str("service", "review").Logger(),
	}
}

type CreateReviewRequest struct {
	MealID string `json:"meal_id"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (s *ReviewService) CreateReview(ctx context.Context, userEmail string, req CreateReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", common.ErrValidation)
	}
	if _, err := s.mealRepo.FindByID(ctx, req.MealID); err != nil {
		return nil, fmt.Errorf("meal lookup: %w", err)
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		MealID:    req.MealID,
		UserEmail: userEmail,
		Rating:    req.Rating,
		Review:    req.Review,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByMeal(ctx context.Context, mealID string) ([]model.Review, error) {
	return s.reviewRepo.FindByMealID(ctx, mealID)
}

func (s *ReviewService) ListByUser(ctx context.Context, email string) ([]model.Review, error) {
	return s.reviewRepo.FindByUserEmail(ctx, email)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id, text string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", common.ErrValidation)
	}
	return s.reviewRepo.Update(ctx, id, text, rating)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	return s.reviewRepo.Delete(ctx, id)
}
