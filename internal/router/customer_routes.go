package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/handler"
	"github.com/nmalhotra/cinebook/internal/middleware"
	"github.com/nmalhotra/cinebook/internal/model"
)

// RegisterCustomer registers the customer-scoped endpoints under /v1:
// the draft checkout flow, booking history and review writing.
// Admins can book tickets too, so both roles pass.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, rv *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	)

	g.POST("/bookings/draft", b.StartDraft)
	g.GET("/bookings/draft/:id", b.GetDraft)
	g.PUT("/bookings/draft/:id/cinema", b.ChooseCinema)
	g.PUT("/bookings/draft/:id/showtime", b.ChooseShowtime)
	g.PUT("/bookings/draft/:id/seats", b.ToggleSeat)
	g.POST("/bookings/draft/:id/confirm", b.ConfirmDraft)
	g.DELETE("/bookings/draft/:id", b.AbandonDraft)
	g.GET("/my-bookings", b.ListBookings)

	g.POST("/movies/:id/reviews", rv.SubmitReview)
	g.DELETE("/reviews/:id", rv.DeleteReview)
	g.POST("/reviews/:id/vote", rv.VoteReview)
}
