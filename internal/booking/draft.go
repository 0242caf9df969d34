package booking

import (
	"time"

	"github.com/nmalhotra/cinebook/internal/model"
	"github.com/nmalhotra/cinebook/internal/seatmap"
)

// Stage names of the draft pipeline.  The flow is strictly forward:
// a stage can only be entered once every predecessor field is set.
type Stage int

const (
	StageMovie    Stage = iota + 1 // movie chosen, cinema pending
	StageCinema                    // cinema chosen, showtime pending
	StageShowtime                  // showtime chosen, seats pending
	StageSeats                     // at least one seat selected
)

// String returns the stage name used in API responses.
func (s Stage) String() string {
	switch s {
	case StageMovie:
		return "movie"
	case StageCinema:
		return "cinema"
	case StageShowtime:
		return "showtime"
	case StageSeats:
		return "seats"
	default:
		return "unknown"
	}
}

// Draft is the in-progress booking carried across the checkout
// screens.  It exists only for the duration of one session: it is
// discarded on confirmation as well as on abandonment, and nothing
// is persisted before confirmation succeeds.
type Draft struct {
	ID        string
	UserID    uint64
	Movie     *model.Movie
	Cinema    *model.Cinema
	Showtime  *model.Showtime
	Selection *Selection
	CreatedAt time.Time
	TouchedAt time.Time
}

// NewDraft starts a draft at stage 1 with the chosen movie.
func NewDraft(id string, userID uint64, movie *model.Movie) (*Draft, error) {
	if movie == nil {
		return nil, &PreconditionError{Missing: []string{"movie"}}
	}
	now := time.Now().UTC()
	return &Draft{
		ID:        id,
		UserID:    userID,
		Movie:     movie,
		CreatedAt: now,
		TouchedAt: now,
	}, nil
}

// Stage reports the highest stage the draft has fully satisfied.
func (d *Draft) Stage() Stage {
	switch {
	case d.Selection != nil && d.Selection.Count() > 0:
		return StageSeats
	case d.Showtime != nil:
		return StageShowtime
	case d.Cinema != nil:
		return StageCinema
	default:
		return StageMovie
	}
}

// missing collects the names of absent predecessor fields up to and
// including the given requirement set.
func (d *Draft) missing(needCinema, needShowtime, needSeats bool) []string {
	var m []string
	if d.Movie == nil {
		m = append(m, "movie")
	}
	if needCinema && d.Cinema == nil {
		m = append(m, "cinema")
	}
	if needShowtime && d.Showtime == nil {
		m = append(m, "showtime")
	}
	if needSeats && (d.Selection == nil || d.Selection.Count() == 0) {
		m = append(m, "seats")
	}
	return m
}

// ChooseCinema advances the draft to stage 2.  The movie must already
// be present.
func (d *Draft) ChooseCinema(cinema *model.Cinema) error {
	if m := d.missing(false, false, false); len(m) > 0 {
		return &PreconditionError{Missing: m}
	}
	if cinema == nil {
		return &ValidationError{Field: "cinema", Message: "required"}
	}
	d.Cinema = cinema
	// A new cinema invalidates any downstream choices.
	d.Showtime = nil
	d.Selection = nil
	d.touch()
	return nil
}

// ChooseShowtime advances the draft to stage 3 and opens the seat map
// for the screening.  Movie and cinema must already be present.
func (d *Draft) ChooseShowtime(show *model.Showtime) error {
	if m := d.missing(true, false, false); len(m) > 0 {
		return &PreconditionError{Missing: m}
	}
	if show == nil {
		return &ValidationError{Field: "showtime", Message: "required"}
	}
	d.Showtime = show
	d.Selection = NewSelection(seatmap.ForShowtime(show.ID))
	d.touch()
	return nil
}

// ToggleSeat flips the selection state of a seat at stage 4.  Movie,
// cinema and showtime must already be present; toggling an
// unavailable seat is a silent no-op per the seat selection contract.
func (d *Draft) ToggleSeat(seatID string) (bool, error) {
	if m := d.missing(true, true, false); len(m) > 0 {
		return false, &PreconditionError{Missing: m}
	}
	changed := d.Selection.Toggle(seatID)
	d.touch()
	return changed, nil
}

// Confirmable checks the full confirmation precondition: all four
// stages satisfied and at least one seat selected.  It returns nil
// when the draft may be confirmed.
func (d *Draft) Confirmable() error {
	if m := d.missing(true, true, true); len(m) > 0 {
		return &PreconditionError{Missing: m}
	}
	return nil
}

// TotalPrice returns the current selection total, 0 before any seat
// has been chosen.
func (d *Draft) TotalPrice() uint32 {
	if d.Selection == nil {
		return 0
	}
	return d.Selection.TotalPrice()
}

func (d *Draft) touch() {
	d.TouchedAt = time.Now().UTC()
}
