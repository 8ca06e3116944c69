package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
	"chef_bazaar/internal/platform/metrics"
)

type contextKey string

const (
	emailCtxKey contextKey = "authEmail"
	userCtxKey  contextKey = "authUser"
)

// Guard is the authorization gate: composable checks placed in front of
// protected handlers. Authenticator must run first; RequireRole and
// RejectFraud both read the identity it attaches and consult the user
// directory live, so role and status changes bite on the very next request.
type Guard struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func NewGuard(users repository.UserRepository, log zerolog.Logger) *Guard {
	return &Guard{
		users: users,
		log:   log.With().Str("component", "guard").Logger(),
	}
}

// Authenticator admits requests carrying a verified bearer token and puts
// the identity claim in the request context. Missing, malformed, expired,
// and badly signed tokens are all denied with the same response, so callers
// learn nothing about why a credential failed.
func (g *Guard) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			g.deny(w, "authenticate", http.StatusUnauthorized)
			return
		}

		email, err := security.EmailFromClaims(claims)
		if err != nil {
			g.deny(w, "authenticate", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), emailCtxKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits authenticated users whose directory record carries one
// of the allowed roles, and attaches that record to the context. The token
// never embeds a role, so this lookup is the only role authority.
func (g *Guard) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				g.deny(w, "authenticate", http.StatusUnauthorized)
				return
			}

			user, err := g.users.FindByEmail(r.Context(), email)
			if err != nil {
				g.deny(w, "role", http.StatusForbidden)
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				g.deny(w, "role", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RejectFraud blocks users flagged as fraud. It gates only operations that
// create new marketplace activity; reads and the flagging action itself are
// exempt.
func (g *Guard) RejectFraud(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		if !ok {
			g.deny(w, "authenticate", http.StatusUnauthorized)
			return
		}

		user, err := g.users.FindByEmail(r.Context(), email)
		if err != nil {
			g.deny(w, "fraud", http.StatusForbidden)
			return
		}
		if user.Status == model.StatusFraud {
			g.log.Warn().Str("email", email).Msg("fraud user blocked")
			g.deny(w, "fraud", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// deny writes the uniform denial body for the given status. The check label
// feeds metrics only; it is never exposed to the caller.
func (g *Guard) deny(w http.ResponseWriter, check string, status int) {
	metrics.AuthDenialsTotal.WithLabelValues(check).Inc()
	if status == http.StatusUnauthorized {
		common.RespondWithError(w, status, common.ErrUnauthorized.Error())
		return
	}
	common.RespondWithError(w, status, common.ErrForbidden.Error())
}

// EmailFromContext returns the authenticated identity claim.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailCtxKey).(string)
	return email, ok
}

// UserFromContext returns the directory record attached by RequireRole.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}
