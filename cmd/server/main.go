package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nmalhotra/cinebook/internal/booking"
	"github.com/nmalhotra/cinebook/internal/config"
	"github.com/nmalhotra/cinebook/internal/database"
	"github.com/nmalhotra/cinebook/internal/handler"
	"github.com/nmalhotra/cinebook/internal/middleware"
	"github.com/nmalhotra/cinebook/internal/queue"
	"github.com/nmalhotra/cinebook/internal/repository"
	"github.com/nmalhotra/cinebook/internal/review"
	"github.com/nmalhotra/cinebook/internal/router"
	"github.com/nmalhotra/cinebook/internal/validation"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Domain services and in-memory draft state.
	drafts := booking.NewDraftStore(booking.DefaultDraftTTL)
	reviewSvc := review.NewService(reviews)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	browseH := handler.NewBrowseHandler(movies, cinemas, showtimes)
	bookingH := handler.NewBookingHandler(drafts, movies, cinemas, showtimes, bookings)
	reviewH := handler.NewReviewHandler(reviewSvc, movies, users)
	adminH := handler.NewAdminHandler(movies)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterHealth(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, browseH, reviewH, config.LoadCacheConfig(), rdb)
	router.RegisterCustomer(e, bookingH, reviewH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer appends confirmations to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
