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

type OrderService struct {
	orderRepo repository.OrderRepository
	mealRepo  repository.MealRepository
	userRepo  repository.UserRepository
	log       zerolog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	mealRepo repository.MealRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mealRepo:  mealRepo,
		userRepo:  userRepo,
		log:       log.With().Str("service", "order").Logger(),
	}
}

type PlaceOrderRequest struct {
	MealID   string `json:"meal_id"`
	Quantity int    `json:"quantity"`
}

// PlaceOrder creates a pending order. The chef identifier is resolved
// server-side from the meal's chef, never trusted from the client.
func (s *OrderService) PlaceOrder(ctx context.Context, userEmail string, req PlaceOrderRequest) (*model.Order, error) {
	if req.MealID == "" {
		return nil, fmt.Errorf("meal_id is required: %w", common.ErrValidation)
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	meal, err := s.mealRepo.FindByID(ctx, req.MealID)
	if err != nil {
		return nil, fmt.Errorf("meal lookup: %w", err)
	}
	chef, err := s.userRepo.FindByEmail(ctx, meal.ChefEmail)
	if err != nil {
		return nil, fmt.Errorf("chef lookup: %w", err)
	}
	if chef.ChefID == nil {
		return nil, fmt.Errorf("meal %s has no approved chef: %w", meal.ID, common.ErrConflict)
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		MealID:        meal.ID,
		UserEmail:     userEmail,
		ChefID:        *chef.ChefID,
		Quantity:      req.Quantity,
		OrderStatus:   model.OrderPending,
		PaymentStatus: model.PaymentPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("user", userEmail).Str("chef_id", order.ChefID).Msg("order placed")
	return order, nil
}

// ListForUser returns a user's own orders.
func (s *OrderService) ListForUser(ctx context.Context, requesterEmail, email string) ([]model.Order, error) {
	if email != requesterEmail {
		return nil, common.ErrForbidden
	}
	return s.orderRepo.FindByUserEmail(ctx, email)
}

// ListForChef returns orders addressed to the requesting chef's identifier.
func (s *OrderService) ListForChef(ctx context.Context, chef *model.User, chefID string) ([]model.Order, error) {
	if chef.ChefID == nil || *chef.ChefID != chefID {
		return nil, common.ErrForbidden
	}
	return s.orderRepo.FindByChefID(ctx, chefID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q: %w", status, common.ErrValidation)
	}
	return s.orderRepo.UpdateOrderStatus(ctx, id, status)
}

func (s *OrderService) MarkPaid(ctx context.Context, id string) error {
	return s.orderRepo.MarkPaid(ctx, id)
}
