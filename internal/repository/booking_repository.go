package repository

import (
	"context"
	"database/sql"

	"github.com/nmalhotra/cinebook/internal/model"
)

// BookingRepo persists confirmed bookings and their seats.  Rows are
// only ever written at confirmation time; in-progress drafts never
// touch the database.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning bookings and the showtime counters.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking within an existing transaction and
// populates its generated ID and timestamp.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (reference, user_id, movie_id, cinema_id, showtime_id, total_price)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.Reference, b.UserID, b.MovieID, b.CinemaID, b.ShowtimeID, b.TotalPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// CreateSeatsBulkTx inserts the booking's seat snapshots in a single
// statement.  Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []model.BookingSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, label, seat_type, price) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.BookingID, s.Label, s.SeatType, s.Price)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// BookingDetail is a booking joined with its movie, cinema and
// showtime labels plus the purchased seats, shaped for the bookings
// history screen.
type BookingDetail struct {
	ID         uint64              `json:"id"`
	Reference  string              `json:"reference"`
	MovieTitle string              `json:"movie_title"`
	CinemaName string              `json:"cinema_name"`
	ShowTime   string              `json:"show_time"`
	Format     string              `json:"format"`
	TotalPrice uint32              `json:"total_price"`
	CreatedAt  string              `json:"created_at"`
	Seats      []BookingSeatDetail `json:"seats"`
}

// BookingSeatDetail is one purchased seat inside a BookingDetail.
type BookingSeatDetail struct {
	Label    string `json:"label"`
	SeatType string `json:"seat_type"`
	Price    uint32 `json:"price"`
}

// ListByUser returns the user's bookings, newest first, with their
// seats in purchase order.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*BookingDetail, error) {
	const q = `SELECT b.id, b.reference, m.title, c.name, st.show_time, st.format, b.total_price, b.created_at
	           FROM bookings b
	           JOIN movies m ON m.id = b.movie_id
	           JOIN cinemas c ON c.id = b.cinema_id
	           JOIN showtimes st ON st.id = b.showtime_id
	           WHERE b.user_id = ?
	           ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*BookingDetail
	byID := map[uint64]*BookingDetail{}
	for rows.Next() {
		d := new(BookingDetail)
		if err := rows.Scan(&d.ID, &d.Reference, &d.MovieTitle, &d.CinemaName,
			&d.ShowTime, &d.Format, &d.TotalPrice, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Seats = []BookingSeatDetail{}
		out = append(out, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	const qs = `SELECT bs.booking_id, bs.label, bs.seat_type, bs.price
	            FROM booking_seats bs
	            JOIN bookings b ON b.id = bs.booking_id
	            WHERE b.user_id = ?
	            ORDER BY bs.id`
	seatRows, err := r.db.QueryContext(ctx, qs, userID)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var (
			bookingID uint64
			s         BookingSeatDetail
		)
		if err := seatRows.Scan(&bookingID, &s.Label, &s.SeatType, &s.Price); err != nil {
			return nil, err
		}
		if d, ok := byID[bookingID]; ok {
			d.Seats = append(d.Seats, s)
		}
	}
	if err := seatRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
