package model

import "time"

// Showtime formats accepted by the `format` column.  The set mirrors
// the screening formats offered on the show selection screen.
const (
	Format2D   = "2D"
	Format3D   = "3D"
	FormatIMAX = "IMAX"
	Format4DX  = "4DX"
)

// Showtime represents a scheduled screening at a cinema.  The time is
// kept as a display string ("7:30 PM") rather than a timestamp since
// the booking flow treats it purely as a label.  AvailableSeats and
// TotalSeats are advisory counters shown while browsing; seat level
// availability comes from the generated seat map.
//
// Fields:
//  ID             – primary key identifier.
//  CinemaID       – cinema where the screening takes place.
//  ShowTime       – display time label.
//  Format         – screening format (2D, 3D, IMAX, 4DX).
//  Price          – base ticket price for this screening.
//  AvailableSeats – advisory count of seats still open.
//  TotalSeats     – hall capacity (50 in seeded data).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Showtime struct {
	ID             uint64    // showtimes.id
	CinemaID       uint64    // showtimes.cinema_id
	ShowTime       string    // showtimes.show_time
	Format         string    // showtimes.format
	Price          uint32    // showtimes.price
	AvailableSeats uint32    // showtimes.available_seats
	TotalSeats     uint32    // showtimes.total_seats
	CreatedAt      time.Time // showtimes.created_at
	UpdatedAt      time.Time // showtimes.updated_at
}
