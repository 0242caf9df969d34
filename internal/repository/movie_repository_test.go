package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/cinebook/internal/model"
)

func TestMovieRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	category := "Action"
	m := &model.Movie{Title: "Blockbuster Hero", Category: &category}

	mock.ExpectExec("INSERT INTO movies").
		WithArgs(m.Title, m.Category, m.Description, m.PosterURL).
		WillReturnResult(sqlmock.NewResult(7, 1))
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT created_at, updated_at FROM movies").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewMovieRepo(db)
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, uint64(7), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoCreateWrapsStoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	driverErr := errors.New("Error 1406: Data too long for column 'title'")
	mock.ExpectExec("INSERT INTO movies").WillReturnError(driverErr)

	repo := NewMovieRepo(db)
	err = repo.Create(context.Background(), &model.Movie{Title: "x"})
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	// the driver message survives verbatim for the user-facing response
	assert.Contains(t, serr.Error(), "Data too long")
	assert.True(t, errors.Is(err, driverErr))
}

func TestMovieRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, category").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewMovieRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieRepoListFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "category", "description", "poster_url", "created_at", "updated_at"}).
		AddRow(1, "Blockbuster Hero", "Action", nil, nil, now, now)
	mock.ExpectQuery("SELECT id, title, category, description, poster_url, created_at, updated_at FROM movies WHERE category = \\? AND LOWER\\(title\\) LIKE \\?").
		WithArgs("Action", "%hero%").
		WillReturnRows(rows)

	repo := NewMovieRepo(db)
	out, err := repo.List(context.Background(), "Action", "Hero")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Blockbuster Hero", out[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
