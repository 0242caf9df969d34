// Package router wires handlers and middleware onto the Echo
// instance.  Route groups mirror the access tiers: public browsing,
// auth, customer and admin.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nmalhotra/cinebook/internal/config"
	"github.com/nmalhotra/cinebook/internal/handler"
	"github.com/nmalhotra/cinebook/internal/middleware"
)

// RegisterHealth exposes the health probe.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth without JWT
// middleware; /v1/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh_token body or a bearer token; the
	// handler sorts out which, so no middleware here.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// bearer-authenticated logout revokes every session of the user
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.
// Responses are cached in Redis when a client is available.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, rv *handler.ReviewHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/movies", b.ListMovies)
	g.GET("/movies/:id", b.GetMovie)
	g.GET("/cinemas", b.ListCinemas)
	g.GET("/cinemas/:id", b.GetCinema)
	g.GET("/cinemas/:id/showtimes", b.ListShowtimes)
	g.GET("/showtimes/:id", b.GetShowtime)
	g.GET("/showtimes/:id/seatmap", b.GetSeatMap)
	g.GET("/movies/:id/reviews", rv.ListReviews)
	g.GET("/movies/:id/reviews/stats", rv.GetReviewStats)
}
