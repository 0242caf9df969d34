// Package seatmap builds the seat grid presented during seat
// selection.  The hall shape is fixed (12 rows, 8 to 12 seats per
// row) while per-seat availability is drawn from an injectable random
// source so callers can produce deterministic layouts.
package seatmap

import (
	"math/rand"
	"strconv"
)

// Seat types and their fixed prices.  The type of a seat is derived
// solely from its row and is immutable once generated.
const (
	TypeStandard = "standard"
	TypePremium  = "premium"
	TypeVIP      = "vip"

	PriceStandard = 250
	PricePremium  = 350
	PriceVIP      = 500
)

// availableProb is the independent probability that a generated seat
// is available for selection.
const availableProb = 0.85

// rows lists the row labels of the hall, front (screen) first.
var rows = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// Seat is one position in the generated grid.  ID is unique within a
// map and formatted as row label plus 1-based seat number ("A1").
// IsSelected is owned by the selection state and always starts false.
type Seat struct {
	ID          string `json:"id"`
	Row         string `json:"row"`
	Number      int    `json:"number"`
	Type        string `json:"type"`
	Price       uint32 `json:"price"`
	IsAvailable bool   `json:"is_available"`
	IsSelected  bool   `json:"is_selected"`
}

// seatsInRow returns how many seats the given zero-based row index
// holds: 8 in rows A-C, 10 in D-F, 12 in G-I and 10 in J-L.
func seatsInRow(rowIndex int) int {
	switch {
	case rowIndex < 3:
		return 8
	case rowIndex < 6:
		return 10
	case rowIndex < 9:
		return 12
	default:
		return 10
	}
}

// typeForRow maps a zero-based row index to the seat class: the two
// front rows are VIP, the next three premium, the rest standard.
func typeForRow(rowIndex int) (string, uint32) {
	switch {
	case rowIndex < 2:
		return TypeVIP, PriceVIP
	case rowIndex < 5:
		return TypePremium, PricePremium
	default:
		return TypeStandard, PriceStandard
	}
}

// Generate produces the full seat map as a flat slice ordered by row
// then seat number.  Availability is drawn independently per seat
// from rng.  The construction is pure: the caller owns the returned
// slice and no state is retained between calls.
func Generate(rng *rand.Rand) []Seat {
	var seats []Seat
	for rowIndex, row := range rows {
		count := seatsInRow(rowIndex)
		seatType, price := typeForRow(rowIndex)
		for n := 1; n <= count; n++ {
			seats = append(seats, Seat{
				ID:          row + strconv.Itoa(n),
				Row:         row,
				Number:      n,
				Type:        seatType,
				Price:       price,
				IsAvailable: rng.Float64() < availableProb,
				IsSelected:  false,
			})
		}
	}
	return seats
}

// ForShowtime generates the seat map for a showtime.  Seeding the
// generator with the showtime id keeps the layout stable across
// requests for the same screening without persisting it.
func ForShowtime(showtimeID uint64) []Seat {
	return Generate(rand.New(rand.NewSource(int64(showtimeID))))
}

// Rows returns the row labels in screen-first order.  The slice is a
// copy; mutating it does not affect generation.
func Rows() []string {
	out := make([]string, len(rows))
	copy(out, rows)
	return out
}
