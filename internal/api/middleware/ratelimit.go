package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
)

// Limiter is the event-counting budget behind RateLimit, backed by Redis in
// production.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit caps how often a client may hit a route group. The budget is
// keyed on the authenticated email when present, otherwise the client IP,
// and scoped per route group so one hot endpoint cannot starve another.
// Limiter errors fail open: losing Redis must not take down the API.
func RateLimit(limiter Limiter, scope string, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				common.RespondWithError(w, http.StatusTooManyRequests, common.ErrRateLimited.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if email, ok := EmailFromContext(r.Context()); ok {
		return email
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
