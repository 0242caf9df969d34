package model

import "time"

// Booking records a confirmed ticket purchase.  It aggregates the
// seats bought in a single checkout and the total paid.  A booking is
// only ever written once the draft flow reaches confirmation; there
// is no pending or partial state in the table.
//
// Fields:
//  ID         – primary key identifier.
//  Reference  – opaque booking reference returned to the client.
//  UserID     – user who confirmed the booking.
//  MovieID    – movie that was booked.
//  CinemaID   – cinema of the screening.
//  ShowtimeID – screening that was booked.
//  TotalPrice – sum of the per-seat prices.
//  CreatedAt  – confirmation timestamp.
type Booking struct {
	ID         uint64    // bookings.id
	Reference  string    // bookings.reference (UUID)
	UserID     uint64    // bookings.user_id
	MovieID    uint64    // bookings.movie_id
	CinemaID   uint64    // bookings.cinema_id
	ShowtimeID uint64    // bookings.showtime_id
	TotalPrice uint32    // bookings.total_price
	CreatedAt  time.Time // bookings.created_at
}

// BookingSeat is one seat inside a booking.  The label, type and
// price are snapshots taken at selection time, not references into a
// live seat map.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – reference to the containing booking.
//  Label     – seat label such as "A1".
//  SeatType  – seat class at selection time.
//  Price     – price paid for this seat.
type BookingSeat struct {
	ID        uint64 // booking_seats.id
	BookingID uint64 // booking_seats.booking_id
	Label     string // booking_seats.label
	SeatType  string // booking_seats.seat_type
	Price     uint32 // booking_seats.price
}
