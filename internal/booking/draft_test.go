package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmalhotra/cinebook/internal/model"
)

func fixtureMovie() *model.Movie   { return &model.Movie{ID: 1, Title: "Blockbuster Hero"} }
func fixtureCinema() *model.Cinema { return &model.Cinema{ID: 2, Name: "PVR Select City"} }
func fixtureShow() *model.Showtime {
	return &model.Showtime{ID: 3, CinemaID: 2, ShowTime: "7:30 PM", Format: model.Format2D, Price: 350}
}

// firstAvailable returns a seat id that can be toggled on the draft's
// generated map.
func firstAvailable(t *testing.T, d *Draft) string {
	t.Helper()
	for _, s := range d.Selection.Seats() {
		if s.IsAvailable {
			return s.ID
		}
	}
	t.Fatal("no available seat in generated map")
	return ""
}

func TestNewDraftRequiresMovie(t *testing.T) {
	_, err := NewDraft("d1", 10, nil)
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, []string{"movie"}, pre.Missing)
}

func TestDraftStageProgression(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	assert.Equal(t, StageMovie, d.Stage())

	require.NoError(t, d.ChooseCinema(fixtureCinema()))
	assert.Equal(t, StageCinema, d.Stage())

	require.NoError(t, d.ChooseShowtime(fixtureShow()))
	assert.Equal(t, StageShowtime, d.Stage())

	changed, err := d.ToggleSeat(firstAvailable(t, d))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StageSeats, d.Stage())
	require.NoError(t, d.Confirmable())
}

func TestChooseShowtimeWithoutCinema(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)

	err = d.ChooseShowtime(fixtureShow())
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, []string{"cinema"}, pre.Missing)
	assert.Nil(t, d.Showtime, "failed advance must not mutate the draft")
}

func TestToggleSeatWithoutShowtime(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	require.NoError(t, d.ChooseCinema(fixtureCinema()))

	_, err = d.ToggleSeat("A1")
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, []string{"showtime"}, pre.Missing)
}

func TestConfirmRequiresSeats(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	require.NoError(t, d.ChooseCinema(fixtureCinema()))
	require.NoError(t, d.ChooseShowtime(fixtureShow()))

	err = d.Confirmable()
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, []string{"seats"}, pre.Missing)

	// selecting then deselecting leaves the draft unconfirmable again
	id := firstAvailable(t, d)
	_, err = d.ToggleSeat(id)
	require.NoError(t, err)
	require.NoError(t, d.Confirmable())
	_, err = d.ToggleSeat(id)
	require.NoError(t, err)
	require.Error(t, d.Confirmable())
}

func TestChooseCinemaInvalidatesDownstream(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	require.NoError(t, d.ChooseCinema(fixtureCinema()))
	require.NoError(t, d.ChooseShowtime(fixtureShow()))
	_, err = d.ToggleSeat(firstAvailable(t, d))
	require.NoError(t, err)

	require.NoError(t, d.ChooseCinema(&model.Cinema{ID: 9, Name: "INOX Nehru Place"}))
	assert.Nil(t, d.Showtime)
	assert.Nil(t, d.Selection)
	assert.Equal(t, StageCinema, d.Stage())
}

func TestTotalPriceZeroBeforeSeats(t *testing.T) {
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d.TotalPrice())
}

func TestDraftStore(t *testing.T) {
	store := NewDraftStore(time.Minute)
	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	store.Put(d)

	got, err := store.Get("d1", 10)
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = store.Get("d1", 99)
	assert.True(t, errors.Is(err, ErrNotDraftOwner))

	_, err = store.Get("nope", 10)
	assert.True(t, errors.Is(err, ErrDraftNotFound))

	store.Delete("d1")
	_, err = store.Get("d1", 10)
	assert.True(t, errors.Is(err, ErrDraftNotFound))
	store.Delete("d1") // idempotent
}

func TestDraftStoreExpiry(t *testing.T) {
	store := NewDraftStore(time.Minute)
	base := time.Now().UTC()
	store.now = func() time.Time { return base }

	d, err := NewDraft("d1", 10, fixtureMovie())
	require.NoError(t, err)
	d.TouchedAt = base
	store.Put(d)

	_, err = store.Get("d1", 10)
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = store.Get("d1", 10)
	assert.True(t, errors.Is(err, ErrDraftNotFound), "expired draft must be gone")

	// Sweep drops expired drafts in bulk.
	d2, err := NewDraft("d2", 10, fixtureMovie())
	require.NoError(t, err)
	d2.TouchedAt = base
	store.Put(d2)
	assert.Equal(t, 1, store.Sweep())
}
