package main

import (
	"context"
	"net/http"
	"os"

	_ "github.com/lyxa123/TubeHeads-sub000/docs" // swagger docs

	"github.com/lyxa123/TubeHeads-sub000/internal/cache"
	"github.com/lyxa123/TubeHeads-sub000/internal/config"
	"github.com/lyxa123/TubeHeads-sub000/internal/db"
	"github.com/lyxa123/TubeHeads-sub000/internal/feed"
	"github.com/lyxa123/TubeHeads-sub000/internal/handler"
	"github.com/lyxa123/TubeHeads-sub000/internal/metadata"
	"github.com/lyxa123/TubeHeads-sub000/internal/repository"
	"github.com/lyxa123/TubeHeads-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title TubeHeads API
// @version 1.0
// @description API social de catálogo de series (ratings, reseñas, watchlist, listas)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx := context.Background()

	// Mongo y Redis
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() { _ = db.Disconnect(ctx, database) }()

	redisCache, err := cache.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer redisCache.Close()

	// repos
	userRepo := repository.NewUserRepository(database)
	showRepo := repository.NewShowRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	watchlistRepo := repository.NewWatchlistRepository(database)
	watchedRepo := repository.NewWatchedRepository(database)
	listRepo := repository.NewListRepository(database)

	// índices únicos: son los que sostienen los invariantes ante carreras
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		showRepo.EnsureIndexes,
		reviewRepo.EnsureIndexes,
		watchlistRepo.EnsureIndexes,
		watchedRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("índices")
		}
	}

	tmdb := metadata.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	hub := feed.NewHub()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	showSvc := service.NewShowService(showRepo, tmdb, redisCache)
	ratingSvc := service.NewRatingService(showRepo, showSvc)
	reviewSvc := service.NewReviewService(reviewRepo, showSvc, ratingSvc, hub)
	librarySvc := service.NewLibraryService(watchlistRepo, watchedRepo, showSvc)
	listSvc := service.NewListService(listRepo, showSvc)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	showH := handler.NewShowHandler(showSvc, ratingSvc, reviewSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	libraryH := handler.NewLibraryHandler(librarySvc)
	listH := handler.NewListHandler(listSvc)
	feedH := handler.NewFeedHandler(hub)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Get("/shows/trending", showH.Trending)
		r.Get("/shows/{id}", showH.Get)
		r.Get("/shows/{id}/rating", showH.GetRating)
		r.Get("/shows/{id}/reviews", showH.GetReviews)

		r.Get("/users/{id}/reviews", reviewH.ByUser)
		r.Get("/users/{id}/lists", listH.ByUser)
	})

	// feed en vivo (el timeout de request no aplica a conexiones ws)
	r.Get("/ws/shows/{id}/reviews", feedH.ShowReviews)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", authH.Me)

			r.Post("/ratings", ratingH.PostMyRating)

			r.Get("/watchlist", libraryH.GetWatchlist)
			r.Get("/watchlist/{id}", libraryH.IsInWatchlist)
			r.Put("/watchlist/{id}", libraryH.AddToWatchlist)
			r.Delete("/watchlist/{id}", libraryH.RemoveFromWatchlist)

			r.Get("/watched", libraryH.GetWatched)
			r.Put("/watched/{id}", libraryH.MarkWatched)
			r.Delete("/watched/{id}", libraryH.UnmarkWatched)

			r.Get("/reviews", reviewH.Mine)
			r.Post("/reviews", reviewH.Create)

			r.Get("/lists", listH.Mine)
			r.Post("/lists", listH.Create)
		})

		r.Route("/reviews/{id}", func(r chi.Router) {
			r.Put("/", reviewH.Edit)
			r.Delete("/", reviewH.Delete)
			r.Post("/like", reviewH.Like)
		})

		r.Route("/lists/{id}", func(r chi.Router) {
			r.Get("/", listH.Get)
			r.Patch("/", listH.SetPrivacy)
			r.Delete("/", listH.Delete)
			r.Put("/shows/{showId}", listH.AddShow)
			r.Delete("/shows/{showId}", listH.RemoveShow)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Info().Str("port", cfg.HTTPPort).Msg("HTTP escuchando")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, r); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
}
