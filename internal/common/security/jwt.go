package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies the bearer tokens asserting a user's
// identity. Tokens carry only the email claim, never a role: authorization
// is resolved against the user directory on every request, so a role change
// needs no token reissuance.
type TokenCodec struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// JWTAuth exposes the verifier handle for the router's jwtauth middleware.
func (c *TokenCodec) JWTAuth() *jwtauth.JWTAuth {
	return c.auth
}

// Issue signs a token for email, valid for the configured TTL.
func (c *TokenCodec) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	_, tokenString, err := c.auth.Encode(claims)
	return tokenString, err
}

// EmailFromClaims extracts the identity claim from a verified token's claims.
func EmailFromClaims(claims map[string]interface{}) (string, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
