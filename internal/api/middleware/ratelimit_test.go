package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/common/security"
)

// fakeLimiter counts events per key in memory.
type fakeLimiter struct {
	max    int
	counts map[string]int
	err    error
	keys   []string
}

func newFakeLimiter(max int) *fakeLimiter {
	return &fakeLimiter{max: max, counts: make(map[string]int)}
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.keys = append(l.keys, key)
	l.counts[key]++
	return l.counts[key] <= l.max, nil
}

func newLimitedRouter(limiter middleware.Limiter, codec *security.TokenCodec, guard *middleware.Guard) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(codec.JWTAuth()))

	limit := middleware.RateLimit(limiter, "mint", zerolog.Nop())
	r.Group(func(lr chi.Router) {
		lr.Use(limit)
		lr.Post("/token", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	r.Group(func(lr chi.Router) {
		lr.Use(guard.Authenticator)
		lr.Use(limit)
		lr.Post("/role-requests", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})
	return r
}

func TestRateLimit_DeniesOverBudget(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	guard := middleware.NewGuard(newDirectory(), zerolog.Nop())
	h := newLimitedRouter(newFakeLimiter(2), codec, guard)

	for i := 0; i < 2; i++ {
		w := doRequest(t, h, http.MethodPost, "/token", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(t, h, http.MethodPost, "/token", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_KeysOnAuthenticatedEmail(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	guard := middleware.NewGuard(newDirectory(), zerolog.Nop())
	limiter := newFakeLimiter(10)
	h := newLimitedRouter(limiter, codec, guard)

	tok, err := codec.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodPost, "/role-requests", tok)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "mint:user@x.com", limiter.keys[0])
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	guard := middleware.NewGuard(newDirectory(), zerolog.Nop())
	limiter := newFakeLimiter(1)
	limiter.err = errors.New("redis down")
	h := newLimitedRouter(limiter, codec, guard)

	for i := 0; i < 3; i++ {
		w := doRequest(t, h, http.MethodPost, "/token", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
