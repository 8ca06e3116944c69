package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.With().Str("service", "user").Logger(),
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

// Profile returns the record for email, but only to its owner.
func (s *UserService) Profile(ctx context.Context, requesterEmail, email string) (*model.User, error) {
	if email != requesterEmail {
		return nil, common.ErrForbidden
	}
	return s.userRepo.FindByEmail(ctx, email)
}

// FlagFraud marks a user as fraudulent. Fraud blocks new marketplace
// activity on the next request; it does not revoke authentication.
func (s *UserService) FlagFraud(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, model.StatusFraud); err != nil {
		return fmt.Errorf("flag fraud: %w", err)
	}
	s.log.Warn().Str("user_id", userID).Msg("user flagged as fraud")
	return nil
}
