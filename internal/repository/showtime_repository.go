package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nmalhotra/cinebook/internal/model"
)

// ShowtimeRepo provides methods to work with showtimes.  A showtime
// belongs to a cinema; the available/total seat counters are advisory
// numbers shown while browsing, not an inventory the booking flow
// reconciles against.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// ListByCinema retrieves all showtimes of a cinema ordered by id.
func (r *ShowtimeRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]*model.Showtime, error) {
	const q = `SELECT id, cinema_id, show_time, format, price, available_seats, total_seats, created_at, updated_at
	           FROM showtimes WHERE cinema_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Showtime
	for rows.Next() {
		st := new(model.Showtime)
		if err := rows.Scan(&st.ID, &st.CinemaID, &st.ShowTime, &st.Format, &st.Price,
			&st.AvailableSeats, &st.TotalSeats, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a showtime by its id.  It returns
// ErrShowtimeNotFound when no row exists.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, cinema_id, show_time, format, price, available_seats, total_seats, created_at, updated_at
	           FROM showtimes WHERE id = ?`
	var st model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&st.ID, &st.CinemaID, &st.ShowTime, &st.Format, &st.Price,
			&st.AvailableSeats, &st.TotalSeats, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// DecrementAvailable lowers the advisory available_seats counter by n
// after a confirmed booking, flooring at zero.  It is best effort
// bookkeeping for the browsing UI, not seat locking.
func (r *ShowtimeRepo) DecrementAvailable(ctx context.Context, tx *sql.Tx, id uint64, n uint32) error {
	const q = `UPDATE showtimes
	           SET available_seats = IF(available_seats > ?, available_seats - ?, 0),
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, n, n, id)
	return err
}
