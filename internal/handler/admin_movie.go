package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/model"
	"github.com/nmalhotra/cinebook/internal/repository"
)

// AdminHandler carries the admin-only movie registry endpoints.
type AdminHandler struct {
	Movies *repository.MovieRepo
}

func NewAdminHandler(movies *repository.MovieRepo) *AdminHandler {
	if movies == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies}
}

// storedMovieFields are the payload keys the registry persists.  Any
// other key the client sends is accepted but dropped, with a log line
// naming what was ignored.
var storedMovieFields = map[string]bool{
	"title":       true,
	"category":    true,
	"description": true,
	"poster_url":  true,
}

// CreateMovie handles POST /v1/admin/movies.  The form may carry more
// fields than the registry stores; the stored subset is written and
// echoed back, the rest is logged and discarded.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	title := stringField(payload, "title")
	if strings.TrimSpace(title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	dropped := make([]string, 0)
	for k := range payload {
		if !storedMovieFields[k] {
			dropped = append(dropped, k)
		}
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		log.Printf("admin: movie create dropped fields: %s", strings.Join(dropped, ", "))
	}

	m := &model.Movie{Title: strings.TrimSpace(title)}
	if v := stringField(payload, "category"); v != "" {
		m.Category = &v
	}
	if v := stringField(payload, "description"); v != "" {
		m.Description = &v
	}
	if v := stringField(payload, "poster_url"); v != "" {
		m.PosterURL = &v
	}

	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		var se *repository.StoreError
		if errors.As(err, &se) {
			// surface the storage failure verbatim, echoing the submitted
			// movie so the admin can retry without re-entering it
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": se.Error(),
				"movie": toMovieView(m),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}

	return c.JSON(http.StatusCreated, toMovieView(m))
}

// ListMovies handles GET /v1/admin/movies: the full registry, no
// filters, straight from the database.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context(), "", "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]movieView, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieView(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// stringField extracts a string-typed key from a raw JSON object,
// returning "" for absent or non-string values.
func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
