package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/cinebook/internal/booking"
	"github.com/nmalhotra/cinebook/internal/queue"
	"github.com/nmalhotra/cinebook/internal/repository"
	"github.com/nmalhotra/cinebook/internal/seatmap"
	"github.com/nmalhotra/cinebook/internal/validation"
)

const testUserID = uint64(42)

func newBookingTest(t *testing.T) (*echo.Echo, *BookingHandler, sqlmock.Sqlmock, *[]queue.BookingConfirmedEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var published []queue.BookingConfirmedEvent
	h := NewBookingHandler(
		booking.NewDraftStore(booking.DefaultDraftTTL),
		repository.NewMovieRepo(db),
		repository.NewCinemaRepo(db),
		repository.NewShowtimeRepo(db),
		repository.NewBookingRepo(db),
	)
	h.Publish = func(_ context.Context, ev queue.BookingConfirmedEvent) error {
		published = append(published, ev)
		return nil
	}

	e := echo.New()
	e.Validator = validation.New()
	return e, h, mock, &published
}

func doJSON(e *echo.Echo, method, body string, userID uint64, paramID string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	return c, rec
}

func expectMovieRow(mock sqlmock.Sqlmock, id uint64, title string) {
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, category, description, poster_url").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "category", "description", "poster_url", "created_at", "updated_at"}).
			AddRow(id, title, "Action", nil, nil, now, now))
}

func expectCinemaRow(mock sqlmock.Sqlmock, id uint64, name string) {
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, location, distance, rating, amenities").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "distance", "rating", "amenities", "created_at", "updated_at"}).
			AddRow(id, name, "Saket, New Delhi", "2.5 km", 4.6, "IMAX,Parking", now, now))
}

func expectShowtimeRow(mock sqlmock.Sqlmock, id, cinemaID uint64) {
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, cinema_id, show_time, format, price").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cinema_id", "show_time", "format", "price", "available_seats", "total_seats", "created_at", "updated_at"}).
			AddRow(id, cinemaID, "7:30 PM", "2D", 350, 45, 50, now, now))
}

// startDraft drives StartDraft and returns the new draft's ID.
func startDraft(t *testing.T, e *echo.Echo, h *BookingHandler, mock sqlmock.Sqlmock) string {
	t.Helper()
	expectMovieRow(mock, 1, "Blockbuster Hero")
	c, rec := doJSON(e, http.MethodPost, `{"movie_id":1}`, testUserID, "")
	require.NoError(t, h.StartDraft(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var view struct {
		ID    string `json:"id"`
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotEmpty(t, view.ID)
	require.Equal(t, "movie", view.Stage)
	return view.ID
}

func TestStartDraftUnknownMovie(t *testing.T) {
	e, h, mock, _ := newBookingTest(t)
	mock.ExpectQuery("SELECT id, title").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := doJSON(e, http.MethodPost, `{"movie_id":9}`, testUserID, "")
	require.NoError(t, h.StartDraft(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDraftWrongUser(t *testing.T) {
	e, h, mock, _ := newBookingTest(t)
	id := startDraft(t, e, h, mock)

	c, rec := doJSON(e, http.MethodGet, "", testUserID+1, id)
	require.NoError(t, h.GetDraft(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChooseShowtimeWrongCinema(t *testing.T) {
	e, h, mock, _ := newBookingTest(t)
	id := startDraft(t, e, h, mock)

	expectCinemaRow(mock, 2, "PVR Saket")
	c, rec := doJSON(e, http.MethodPut, `{"cinema_id":2}`, testUserID, id)
	require.NoError(t, h.ChooseCinema(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// showtime 3 belongs to cinema 5, not the chosen cinema 2
	expectShowtimeRow(mock, 3, 5)
	c, rec = doJSON(e, http.MethodPut, `{"showtime_id":3}`, testUserID, id)
	require.NoError(t, h.ChooseShowtime(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmWithoutSeats(t *testing.T) {
	e, h, mock, _ := newBookingTest(t)
	id := startDraft(t, e, h, mock)

	expectCinemaRow(mock, 2, "PVR Saket")
	c, _ := doJSON(e, http.MethodPut, `{"cinema_id":2}`, testUserID, id)
	require.NoError(t, h.ChooseCinema(c))

	expectShowtimeRow(mock, 3, 2)
	c, _ = doJSON(e, http.MethodPut, `{"showtime_id":3}`, testUserID, id)
	require.NoError(t, h.ChooseShowtime(c))

	c, rec := doJSON(e, http.MethodPost, "", testUserID, id)
	require.NoError(t, h.ConfirmDraft(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"seats"}, body.Missing)
}

func TestDraftFlowConfirm(t *testing.T) {
	e, h, mock, published := newBookingTest(t)
	id := startDraft(t, e, h, mock)

	expectCinemaRow(mock, 2, "PVR Saket")
	c, _ := doJSON(e, http.MethodPut, `{"cinema_id":2}`, testUserID, id)
	require.NoError(t, h.ChooseCinema(c))

	expectShowtimeRow(mock, 3, 2)
	c, rec := doJSON(e, http.MethodPut, `{"showtime_id":3}`, testUserID, id)
	require.NoError(t, h.ChooseShowtime(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// pick the first available seat of the deterministic layout
	var seat seatmap.Seat
	for _, s := range seatmap.ForShowtime(3) {
		if s.IsAvailable {
			seat = s
			break
		}
	}
	require.NotEmpty(t, seat.ID)

	c, rec = doJSON(e, http.MethodPut, fmt.Sprintf(`{"seat_id":%q}`, seat.ID), testUserID, id)
	require.NoError(t, h.ToggleSeat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(uint64(11), seat.ID, seat.Type, seat.Price).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE showtimes").
		WithArgs(uint32(1), uint32(1), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec = doJSON(e, http.MethodPost, "", testUserID, id)
	require.NoError(t, h.ConfirmDraft(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		BookingID  uint64   `json:"booking_id"`
		Reference  string   `json:"reference"`
		TotalPrice uint32   `json:"total_price"`
		Seats      []string `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(11), resp.BookingID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, seat.Price, resp.TotalPrice)
	assert.Equal(t, []string{seat.ID}, resp.Seats)
	assert.NoError(t, mock.ExpectationsWereMet())

	// the draft is gone after confirmation
	c, rec = doJSON(e, http.MethodGet, "", testUserID, id)
	require.NoError(t, h.GetDraft(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// one event, matching the committed booking
	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(11), ev.BookingID)
	assert.Equal(t, "Blockbuster Hero", ev.MovieTitle)
	assert.Equal(t, "PVR Saket", ev.CinemaName)
	assert.Equal(t, []string{seat.ID}, ev.SeatLabels)
}

func TestAbandonDraftIdempotent(t *testing.T) {
	e, h, mock, _ := newBookingTest(t)
	id := startDraft(t, e, h, mock)

	c, rec := doJSON(e, http.MethodDelete, "", testUserID, id)
	require.NoError(t, h.AbandonDraft(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// deleting again still succeeds
	c, rec = doJSON(e, http.MethodDelete, "", testUserID, id)
	require.NoError(t, h.AbandonDraft(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
