package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nmalhotra/cinebook/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.  The
// movies table is the source of truth for the catalogue; no client
// side cache of admin-created movies is authoritative.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a movie with the columns the table accepts: title,
// category, description and poster_url.  On success the movie's ID
// and timestamps are populated.  Database failures are wrapped in a
// StoreError so the caller can surface the driver message verbatim.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const qInsert = `INSERT INTO movies (title, category, description, poster_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, m.Title, m.Category, m.Description, m.PosterURL)
	if err != nil {
		return &StoreError{Op: "insert movie", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return &StoreError{Op: "insert movie", Err: err}
	}
	m.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM movies WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		return &StoreError{Op: "read back movie", Err: err}
	}
	return nil
}

// GetByID fetches a movie by its ID.  It returns ErrMovieNotFound
// when no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, category, description, poster_url, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.Title, &m.Category, &m.Description, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns movies ordered by id, optionally filtered by category
// (exact match) and a case-insensitive title substring search.  Empty
// filter values are ignored.
func (r *MovieRepo) List(ctx context.Context, category, search string) ([]*model.Movie, error) {
	q := `SELECT id, title, category, description, poster_url, created_at, updated_at FROM movies`
	var (
		conds []string
		args  []interface{}
	)
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if search != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m := new(model.Movie)
		if err := rows.Scan(&m.ID, &m.Title, &m.Category, &m.Description, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
