package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

// AuthService handles self-registration and token minting. Credentials are
// established upstream; the token asserts identity only, so minting requires
// nothing beyond a registered email.
type AuthService struct {
	userRepo   repository.UserRepository
	codec      *security.TokenCodec
	ownerEmail string
	log        zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, codec *security.TokenCodec, ownerEmail string, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		codec:      codec,
		ownerEmail: ownerEmail,
		log:        log.With().Str("service", "auth").Logger(),
	}
}

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates the user on first sight and is a no-op for an email that
// already exists. The designated owner email registers as admin, everyone
// else as a plain user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required: %w", common.ErrBadRequest)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	role := model.RoleUser
	if s.ownerEmail != "" && req.Email == s.ownerEmail {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
		Status: model.StatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration for the same email may win the race.
		if errors.Is(err, common.ErrConflict) {
			return s.userRepo.FindByEmail(ctx, req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// IssueToken mints a bearer token for a registered email. An unknown email
// gets the same generic denial as a bad credential.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required: %w", common.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.codec.Issue(email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
