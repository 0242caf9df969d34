package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/booking"
	"github.com/nmalhotra/cinebook/internal/model"
	"github.com/nmalhotra/cinebook/internal/queue"
	"github.com/nmalhotra/cinebook/internal/repository"
	"github.com/nmalhotra/cinebook/internal/seatmap"
)

// BookingHandler drives the draft checkout flow: start a draft for a
// movie, pick a cinema, pick a showtime, toggle seats, confirm.
// Drafts live in memory with a TTL; only confirmation writes to the
// database.
type BookingHandler struct {
	Drafts    *booking.DraftStore
	Movies    *repository.MovieRepo
	Cinemas   *repository.CinemaRepo
	Showtimes *repository.ShowtimeRepo
	Bookings  *repository.BookingRepo

	// Publish sends the confirmation event; overridable in tests.
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

func NewBookingHandler(drafts *booking.DraftStore, m *repository.MovieRepo, cin *repository.CinemaRepo, st *repository.ShowtimeRepo, b *repository.BookingRepo) *BookingHandler {
	if drafts == nil || m == nil || cin == nil || st == nil || b == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Drafts:    drafts,
		Movies:    m,
		Cinemas:   cin,
		Showtimes: st,
		Bookings:  b,
		Publish:   queue.PublishBookingConfirmed,
	}
}

// ----- DTOs -----

type startDraftReq struct {
	MovieID uint64 `json:"movie_id" validate:"required,gt=0"`
}
type chooseCinemaReq struct {
	CinemaID uint64 `json:"cinema_id" validate:"required,gt=0"`
}
type chooseShowtimeReq struct {
	ShowtimeID uint64 `json:"showtime_id" validate:"required,gt=0"`
}
type toggleSeatReq struct {
	SeatID string `json:"seat_id" validate:"required"`
}

// draftView is the client-facing draft snapshot.  Seats is only
// populated once a showtime is chosen.
type draftView struct {
	ID         string         `json:"id"`
	Stage      string         `json:"stage"`
	Movie      movieView      `json:"movie"`
	Cinema     *cinemaView    `json:"cinema,omitempty"`
	Showtime   *showtimeView  `json:"showtime,omitempty"`
	Seats      []seatmap.Seat `json:"seats,omitempty"`
	Selected   []string       `json:"selected"`
	TotalPrice uint32         `json:"total_price"`
}

func toDraftView(d *booking.Draft) draftView {
	v := draftView{
		ID:         d.ID,
		Stage:      d.Stage().String(),
		Movie:      toMovieView(d.Movie),
		Selected:   []string{},
		TotalPrice: d.TotalPrice(),
	}
	if d.Cinema != nil {
		v.Cinema = &cinemaView{
			ID:        d.Cinema.ID,
			Name:      d.Cinema.Name,
			Location:  d.Cinema.Location,
			Distance:  d.Cinema.Distance,
			Rating:    d.Cinema.Rating,
			Amenities: d.Cinema.Amenities,
		}
	}
	if d.Showtime != nil {
		v.Showtime = &showtimeView{
			ID:             d.Showtime.ID,
			CinemaID:       d.Showtime.CinemaID,
			ShowTime:       d.Showtime.ShowTime,
			Format:         d.Showtime.Format,
			Price:          d.Showtime.Price,
			AvailableSeats: d.Showtime.AvailableSeats,
			TotalSeats:     d.Showtime.TotalSeats,
		}
	}
	if d.Selection != nil {
		v.Seats = d.Selection.Seats()
		for _, s := range d.Selection.Selected() {
			v.Selected = append(v.Selected, s.ID)
		}
	}
	return v
}

// draftError maps draft flow errors onto HTTP responses.
func draftError(c echo.Context, err error) error {
	var pre *booking.PreconditionError
	var val *booking.ValidationError
	switch {
	case errors.Is(err, booking.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
	case errors.Is(err, booking.ErrNotDraftOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.As(err, &pre):
		return c.JSON(http.StatusConflict, echo.Map{"error": pre.Error(), "missing": pre.Missing})
	case errors.As(err, &val):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": val.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// StartDraft handles POST /v1/bookings/draft.  Creates a fresh draft
// anchored to a movie.
func (h *BookingHandler) StartDraft(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req startDraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, req.MovieID)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	d, err := booking.NewDraft(uuid.NewString(), userID, movie)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create draft failed"})
	}
	h.Drafts.Put(d)
	return c.JSON(http.StatusCreated, toDraftView(d))
}

// GetDraft handles GET /v1/bookings/draft/:id.
func (h *BookingHandler) GetDraft(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, toDraftView(d))
}

// ChooseCinema handles PUT /v1/bookings/draft/:id/cinema.  Picking a
// cinema resets any previously chosen showtime and seats.
func (h *BookingHandler) ChooseCinema(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req chooseCinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return draftError(c, err)
	}

	cinema, err := h.Cinemas.GetByID(c.Request().Context(), req.CinemaID)
	if err != nil {
		if err == repository.ErrCinemaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := d.ChooseCinema(cinema); err != nil {
		return draftError(c, err)
	}
	h.Drafts.Put(d)
	return c.JSON(http.StatusOK, toDraftView(d))
}

// ChooseShowtime handles PUT /v1/bookings/draft/:id/showtime.  The
// showtime must belong to the draft's chosen cinema.
func (h *BookingHandler) ChooseShowtime(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req chooseShowtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return draftError(c, err)
	}

	show, err := h.Showtimes.GetByID(c.Request().Context(), req.ShowtimeID)
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if d.Cinema != nil && show.CinemaID != d.Cinema.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime belongs to a different cinema"})
	}

	if err := d.ChooseShowtime(show); err != nil {
		return draftError(c, err)
	}
	h.Drafts.Put(d)
	return c.JSON(http.StatusOK, toDraftView(d))
}

// ToggleSeat handles PUT /v1/bookings/draft/:id/seats.  Toggles a
// single seat; toggling an unavailable or unknown seat is a no-op.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req toggleSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return draftError(c, err)
	}
	changed, err := d.ToggleSeat(req.SeatID)
	if err != nil {
		return draftError(c, err)
	}
	h.Drafts.Put(d)

	view := toDraftView(d)
	return c.JSON(http.StatusOK, echo.Map{
		"changed": changed,
		"draft":   view,
	})
}

// AbandonDraft handles DELETE /v1/bookings/draft/:id.  Deleting an
// already expired draft succeeds.
func (h *BookingHandler) AbandonDraft(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	switch _, err := h.Drafts.Get(id, userID); {
	case err == nil:
		h.Drafts.Delete(id)
	case errors.Is(err, booking.ErrNotDraftOwner):
		return draftError(c, err)
	}
	// an already expired draft is treated as deleted
	return c.NoContent(http.StatusNoContent)
}

// ConfirmDraft handles POST /v1/bookings/draft/:id/confirm.  Persists
// the booking with its seat snapshots in one transaction, decrements
// the showtime's advisory availability counter, drops the draft and
// emits a booking.confirmed event.
func (h *BookingHandler) ConfirmDraft(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return draftError(c, err)
	}
	if err := d.Confirmable(); err != nil {
		return draftError(c, err)
	}

	selected := d.Selection.Selected()
	rec := &model.Booking{
		Reference:  uuid.NewString(),
		UserID:     userID,
		MovieID:    d.Movie.ID,
		CinemaID:   d.Cinema.ID,
		ShowtimeID: d.Showtime.ID,
		TotalPrice: d.TotalPrice(),
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Bookings.CreateTx(ctx, tx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	seats := make([]model.BookingSeat, 0, len(selected))
	for _, s := range selected {
		seats = append(seats, model.BookingSeat{
			BookingID: rec.ID,
			Label:     s.ID,
			SeatType:  s.Type,
			Price:     s.Price,
		})
	}
	if err := h.Bookings.CreateSeatsBulkTx(ctx, tx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking seats"})
	}
	if err := h.Showtimes.DecrementAvailable(ctx, tx, d.Showtime.ID, uint32(len(seats))); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update availability"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.Drafts.Delete(d.ID)

	labels := make([]string, 0, len(selected))
	for _, s := range selected {
		labels = append(labels, s.ID)
	}
	// Booking is committed; a failed publish is logged by the
	// publisher and ignored here.
	_ = h.Publish(ctx, queue.BookingConfirmedEvent{
		BookingID:   rec.ID,
		Reference:   rec.Reference,
		UserID:      userID,
		MovieID:     d.Movie.ID,
		MovieTitle:  d.Movie.Title,
		CinemaID:    d.Cinema.ID,
		CinemaName:  d.Cinema.Name,
		ShowtimeID:  d.Showtime.ID,
		ShowTime:    d.Showtime.ShowTime,
		Format:      d.Showtime.Format,
		SeatLabels:  labels,
		TotalPrice:  rec.TotalPrice,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":  rec.ID,
		"reference":   rec.Reference,
		"total_price": rec.TotalPrice,
		"seats":       labels,
	})
}

// ListBookings handles GET /v1/my-bookings.  Returns confirmed
// bookings of the current user, newest first, with seat details.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
