package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/api/handler"
	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/platform/cache"
)

type Services struct {
	Auth        *service.AuthService
	User        *service.UserService
	Meal        *service.MealService
	Order       *service.OrderService
	Review      *service.ReviewService
	Favorite    *service.FavoriteService
	RoleRequest *service.RoleRequestService
	Stats       *service.StatsService
}

func NewRouter(
	codec *security.TokenCodec,
	guard *middleware.Guard,
	limiter *cache.Limiter,
	svc Services,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses and verifies a bearer token when present; the Guard decides
	// per route whether a verified identity is required.
	r.Use(jwtauth.Verifier(codec.JWTAuth()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	limit := middleware.RateLimit(limiter, "write", log)

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth, limit)
		v1.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(svc.User, guard)
		v1.Route("/users", userHandler.RegisterRoutes)

		mealHandler := handler.NewMealHandler(svc.Meal, guard)
		v1.Route("/meals", mealHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(svc.Order, guard)
		v1.Route("/orders", orderHandler.RegisterRoutes)

		reviewHandler := handler.NewReviewHandler(svc.Review, guard)
		v1.Route("/reviews", reviewHandler.RegisterRoutes)

		favoriteHandler := handler.NewFavoriteHandler(svc.Favorite, guard)
		v1.Route("/favorites", favoriteHandler.RegisterRoutes)

		roleRequestHandler := handler.NewRoleRequestHandler(svc.RoleRequest, guard, limit)
		v1.Route("/role-requests", roleRequestHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(svc.Stats, guard)
		v1.Route("/admin-stats", adminHandler.RegisterRoutes)
	})

	return r
}
