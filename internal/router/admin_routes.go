package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/handler"
	"github.com/nmalhotra/cinebook/internal/middleware"
	"github.com/nmalhotra/cinebook/internal/model"
)

// RegisterAdmin registers the admin-only movie registry under
// /v1/admin.  The ADMIN role claim is verified from the access token
// on every request; there is no client-side admin state to trust.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/movies", a.CreateMovie)
	g.GET("/movies", a.ListMovies)
}
