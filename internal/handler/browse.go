package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/model"
	"github.com/nmalhotra/cinebook/internal/repository"
	"github.com/nmalhotra/cinebook/internal/seatmap"
)

// BrowseHandler serves the unauthenticated browsing API: movies,
// cinemas, showtimes and per-showtime seat maps.
type BrowseHandler struct {
	Movies    *repository.MovieRepo
	Cinemas   *repository.CinemaRepo
	Showtimes *repository.ShowtimeRepo
}

func NewBrowseHandler(m *repository.MovieRepo, cin *repository.CinemaRepo, st *repository.ShowtimeRepo) *BrowseHandler {
	if m == nil || cin == nil || st == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Movies: m, Cinemas: cin, Showtimes: st}
}

// movieView is the public movie shape.
type movieView struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	PosterURL   *string `json:"poster_url"`
}

func toMovieView(m *model.Movie) movieView {
	return movieView{
		ID:          m.ID,
		Title:       m.Title,
		Category:    m.Category,
		Description: m.Description,
		PosterURL:   m.PosterURL,
	}
}

// ListMovies handles GET /v1/movies.  Supports optional ?category=
// and ?search= filters; search matches the title case-insensitively.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))
	search := strings.TrimSpace(c.QueryParam("search"))

	movies, err := h.Movies.List(c.Request().Context(), category, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]movieView, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieView(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMovie handles GET /v1/movies/:id.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toMovieView(m))
}

// cinemaView is the public cinema shape.
type cinemaView struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Distance  string   `json:"distance"`
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
}

// ListCinemas handles GET /v1/cinemas.
func (h *BrowseHandler) ListCinemas(c echo.Context) error {
	cinemas, err := h.Cinemas.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]cinemaView, 0, len(cinemas))
	for _, cin := range cinemas {
		out = append(out, cinemaView{
			ID:        cin.ID,
			Name:      cin.Name,
			Location:  cin.Location,
			Distance:  cin.Distance,
			Rating:    cin.Rating,
			Amenities: cin.Amenities,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCinema handles GET /v1/cinemas/:id.
func (h *BrowseHandler) GetCinema(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cin, err := h.Cinemas.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCinemaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cinemaView{
		ID:        cin.ID,
		Name:      cin.Name,
		Location:  cin.Location,
		Distance:  cin.Distance,
		Rating:    cin.Rating,
		Amenities: cin.Amenities,
	})
}

// showtimeView is the public showtime shape.
type showtimeView struct {
	ID             uint64 `json:"id"`
	CinemaID       uint64 `json:"cinema_id"`
	ShowTime       string `json:"show_time"`
	Format         string `json:"format"`
	Price          uint32 `json:"price"`
	AvailableSeats uint32 `json:"available_seats"`
	TotalSeats     uint32 `json:"total_seats"`
}

func toShowtimeView(s *model.Showtime) showtimeView {
	return showtimeView{
		ID:             s.ID,
		CinemaID:       s.CinemaID,
		ShowTime:       s.ShowTime,
		Format:         s.Format,
		Price:          s.Price,
		AvailableSeats: s.AvailableSeats,
		TotalSeats:     s.TotalSeats,
	}
}

// ListShowtimes handles GET /v1/cinemas/:id/showtimes.  Verifies the
// cinema exists before listing.
func (h *BrowseHandler) ListShowtimes(c echo.Context) error {
	cinemaID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Cinemas.GetByID(ctx, cinemaID); err != nil {
		if err == repository.ErrCinemaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.Showtimes.ListByCinema(ctx, cinemaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]showtimeView, 0, len(shows))
	for _, s := range shows {
		out = append(out, toShowtimeView(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetShowtime handles GET /v1/showtimes/:id.
func (h *BrowseHandler) GetShowtime(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	show, err := h.Showtimes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toShowtimeView(show))
}

// GetSeatMap handles GET /v1/showtimes/:id/seatmap.  The layout is
// generated deterministically from the showtime ID so repeated calls
// see the same hall.
func (h *BrowseHandler) GetSeatMap(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	show, err := h.Showtimes.GetByID(ctx, showID)
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seats := seatmap.ForShowtime(show.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id": show.ID,
		"rows":        seatmap.Rows(),
		"seats":       seats,
	})
}
