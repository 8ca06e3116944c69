package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/domain/model"
)

func newAuthService(userRepo *memUserRepo, ownerEmail string) (*AuthService, *security.TokenCodec) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	return NewAuthService(userRepo, codec, ownerEmail, zerolog.Nop()), codec
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemUserRepo(), "owner@x.com")

	user, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, model.StatusActive, user.Status)
	assert.Nil(t, user.ChefID)
}

func TestRegister_OwnerBecomesAdmin(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemUserRepo(), "owner@x.com")

	user, err := svc.Register(context.Background(), RegisterRequest{Email: "owner@x.com"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestRegister_ExistingEmailIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemUserRepo(), "")
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com"})
	require.NoError(t, err)

	second, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRegister_EmailRequired(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemUserRepo(), "")

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "no email"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestIssueToken_ForRegisteredEmail(t *testing.T) {
	t.Parallel()

	svc, codec := newAuthService(newMemUserRepo(activeUser("u1", "a@x.com")), "")

	tok, err := svc.IssueToken(context.Background(), "a@x.com")
	require.NoError(t, err)

	parsed, err := jwtauth.VerifyToken(codec.JWTAuth(), tok)
	require.NoError(t, err)
	email, ok := parsed.Get("email")
	require.True(t, ok)
	assert.Equal(t, "a@x.com", email)
}

func TestIssueToken_UnknownEmailDenied(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(newMemUserRepo(), "")

	_, err := svc.IssueToken(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
