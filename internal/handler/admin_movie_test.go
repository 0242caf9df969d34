package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/cinebook/internal/repository"
)

func newAdminTest(t *testing.T) (*echo.Echo, *AdminHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return echo.New(), NewAdminHandler(repository.NewMovieRepo(db)), mock
}

func adminPost(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateMovieStoresSubsetAndDropsRest(t *testing.T) {
	e, h, mock := newAdminTest(t)

	now := time.Now().UTC()
	category := "Action"
	mock.ExpectExec("INSERT INTO movies").
		WithArgs("Blockbuster Hero", &category, nil, nil).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM movies").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	// industry, rating and duration are not stored; they must be
	// dropped without corrupting the stored subset
	c, rec := adminPost(e, `{
		"title": "Blockbuster Hero",
		"category": "Action",
		"industry": "Bollywood",
		"rating": 4.8,
		"duration": "2h 45m"
	}`)
	require.NoError(t, h.CreateMovie(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var view struct {
		ID       uint64  `json:"id"`
		Title    string  `json:"title"`
		Category *string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, uint64(7), view.ID)
	assert.Equal(t, "Blockbuster Hero", view.Title)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Action", *view.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMovieRequiresTitle(t *testing.T) {
	e, h, _ := newAdminTest(t)

	c, rec := adminPost(e, `{"category": "Action"}`)
	require.NoError(t, h.CreateMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMovieSurfacesStoreError(t *testing.T) {
	e, h, mock := newAdminTest(t)

	driverErr := errors.New("Error 1406: Data too long for column 'title'")
	mock.ExpectExec("INSERT INTO movies").WillReturnError(driverErr)

	c, rec := adminPost(e, `{"title": "x"}`)
	require.NoError(t, h.CreateMovie(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// driver message verbatim so admins can act on it
	assert.Contains(t, body.Error, "Data too long")
}
