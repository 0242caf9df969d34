// Package queue publishes and consumes booking domain events over
// RabbitMQ.
package queue

// BookingConfirmedQueue is the durable queue carrying confirmation
// events.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a booking draft is
// confirmed and persisted.  It carries enough denormalized detail for
// downstream consumers to log or notify without touching the primary
// database.
type BookingConfirmedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	Reference   string   `json:"reference"`
	UserID      uint64   `json:"user_id"`
	MovieID     uint64   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	CinemaID    uint64   `json:"cinema_id"`
	CinemaName  string   `json:"cinema_name"`
	ShowtimeID  uint64   `json:"showtime_id"`
	ShowTime    string   `json:"show_time"`
	Format      string   `json:"format"`
	SeatLabels  []string `json:"seats"`
	TotalPrice  uint32   `json:"total_price"`
	ConfirmedAt string   `json:"confirmed_at"`
}
