package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"chef_bazaar/internal/api"
	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/app/service"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/domain/repository"
	"chef_bazaar/internal/platform/cache"
	"chef_bazaar/internal/platform/config"
	"chef_bazaar/internal/platform/database"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	rdb, err := cache.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to redis")
	}
	defer rdb.Close()

	userRepo := repository.NewPgUserRepository(db)
	requestRepo := repository.NewPgRoleRequestRepository(db)
	mealRepo := repository.NewPgMealRepository(db)
	orderRepo := repository.NewPgOrderRepository(db)
	reviewRepo := repository.NewPgReviewRepository(db)
	favoriteRepo := repository.NewPgFavoriteRepository(db)

	codec := security.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	guard := middleware.NewGuard(userRepo, log)
	limiter := cache.NewLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)

	svc := api.Services{
		Auth:        service.NewAuthService(userRepo, codec, cfg.OwnerEmail, log),
		User:        service.NewUserService(userRepo, log),
		Meal:        service.NewMealService(mealRepo, log),
		Order:       service.NewOrderService(orderRepo, mealRepo, userRepo, log),
		Review:      service.NewReviewService(reviewRepo, mealRepo, log),
		Favorite:    service.NewFavoriteService(favoriteRepo, mealRepo, log),
		RoleRequest: service.NewRoleRequestService(requestRepo, userRepo, repository.NewSQLTxRunner(db), log),
		Stats:       service.NewStatsService(userRepo, orderRepo),
	}

	router := api.NewRouter(codec, guard, limiter, svc, log)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}
