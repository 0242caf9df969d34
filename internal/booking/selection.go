package booking

import "github.com/nmalhotra/cinebook/internal/seatmap"

// Selection tracks which seats of a seat map are currently selected
// and the running total price.  Selected seats are snapshots taken at
// toggle time and kept in insertion order so receipts and summaries
// render deterministically.  The total is recomputed together with
// every toggle; there is no observable state where selection and
// total disagree.
type Selection struct {
	seats    []seatmap.Seat // the full map, indexed by position
	byID     map[string]int // seat id -> index into seats
	selected []seatmap.Seat // snapshots in insertion order
	total    uint32
}

// NewSelection wraps a generated seat map.  The selection owns the
// slice from this point on; callers must not mutate it.
func NewSelection(seats []seatmap.Seat) *Selection {
	byID := make(map[string]int, len(seats))
	for i, s := range seats {
		byID[s.ID] = i
	}
	return &Selection{seats: seats, byID: byID}
}

// Toggle flips the selected state of the seat with the given id.
// Toggling an unknown or unavailable seat is a silent no-op, matching
// the disabled seats on the selection screen.  It returns true when
// the toggle changed state.
func (sel *Selection) Toggle(seatID string) bool {
	i, ok := sel.byID[seatID]
	if !ok || !sel.seats[i].IsAvailable {
		return false
	}
	if sel.seats[i].IsSelected {
		sel.seats[i].IsSelected = false
		sel.removeSelected(seatID)
	} else {
		sel.seats[i].IsSelected = true
		snap := sel.seats[i]
		sel.selected = append(sel.selected, snap)
	}
	sel.recompute()
	return true
}

// removeSelected drops the snapshot with the given id, preserving the
// order of the remaining selections.
func (sel *Selection) removeSelected(seatID string) {
	for i, s := range sel.selected {
		if s.ID == seatID {
			sel.selected = append(sel.selected[:i], sel.selected[i+1:]...)
			return
		}
	}
}

// recompute rebuilds the total from the current selection.  The total
// is never adjusted incrementally, so a double toggle cannot drift.
func (sel *Selection) recompute() {
	var total uint32
	for _, s := range sel.selected {
		total += s.Price
	}
	sel.total = total
}

// Selected returns the selected seat snapshots in insertion order.
// The returned slice is a copy.
func (sel *Selection) Selected() []seatmap.Seat {
	out := make([]seatmap.Seat, len(sel.selected))
	copy(out, sel.selected)
	return out
}

// TotalPrice returns the sum of the prices of the selected seats.
func (sel *Selection) TotalPrice() uint32 {
	return sel.total
}

// Seats returns the full seat map with current selection flags.  The
// returned slice is a copy.
func (sel *Selection) Seats() []seatmap.Seat {
	out := make([]seatmap.Seat, len(sel.seats))
	copy(out, sel.seats)
	return out
}

// Count returns how many seats are currently selected.
func (sel *Selection) Count() int {
	return len(sel.selected)
}
