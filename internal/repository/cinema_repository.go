package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nmalhotra/cinebook/internal/model"
)

// CinemaRepo encapsulates all database queries related to cinemas.
// Amenities are stored as a comma separated list in a single column
// and split into tags when scanned.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the provided DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

// ListAll returns all cinemas ordered by id for the cinema selection
// screen.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]*model.Cinema, error) {
	const q = `SELECT id, name, location, distance, rating, amenities, created_at, updated_at
	           FROM cinemas ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Cinema
	for rows.Next() {
		c, err := scanCinema(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a cinema by its ID.  It returns ErrCinemaNotFound
// when no row exists.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = `SELECT id, name, location, distance, rating, amenities, created_at, updated_at
	           FROM cinemas WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	c, err := scanCinema(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return c, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCinema(s scanner) (*model.Cinema, error) {
	var (
		c         model.Cinema
		amenities string
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Location, &c.Distance, &c.Rating, &amenities, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Amenities = splitAmenities(amenities)
	return &c, nil
}

// splitAmenities turns the stored comma separated list into tags,
// dropping empty entries.
func splitAmenities(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinAmenities renders tags back into the stored column format.  It
// is used by seed tooling when inserting cinemas.
func JoinAmenities(tags []string) string {
	return strings.Join(tags, ",")
}
