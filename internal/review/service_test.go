package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewService(repo), repo
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	author := Author{ID: 1, Name: "Priya"}

	cases := []struct {
		name  string
		data  FormData
		field string
	}{
		{"rating too low", FormData{Rating: 0, Title: "t", Content: "c"}, "rating"},
		{"rating too high", FormData{Rating: 6, Title: "t", Content: "c"}, "rating"},
		{"empty title", FormData{Rating: 4, Title: "   ", Content: "c"}, "title"},
		{"empty content", FormData{Rating: 4, Title: "t", Content: "\t\n"}, "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, 1, author, tc.data)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// nothing was stored by the failed attempts
	reviews, err := svc.ListByMovie(ctx, 1, SortNewest)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestSubmitAndDuplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	author := Author{ID: 1, Name: "Priya"}

	first, err := svc.Submit(ctx, 1, author, FormData{Rating: 5, Title: "Loved it", Content: "Great movie", Verified: true})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 0, first.Helpful)
	assert.True(t, first.Verified)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = svc.Submit(ctx, 1, author, FormData{Rating: 3, Title: "Changed my mind", Content: "Meh"})
	var dup *DuplicateReviewError
	require.ErrorAs(t, err, &dup)
	require.NotNil(t, dup.Existing)
	assert.Equal(t, first.ID, dup.Existing.ID)

	// the duplicate attempt changed nothing
	reviews, err := svc.ListByMovie(ctx, 1, SortNewest)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Loved it", reviews[0].Title)

	// same user, different movie is fine
	_, err = svc.Submit(ctx, 2, author, FormData{Rating: 4, Title: "Also good", Content: "Yep"})
	require.NoError(t, err)
}

func TestSubmitTrimsFields(t *testing.T) {
	svc, _ := newTestService()
	r, err := svc.Submit(context.Background(), 1, Author{ID: 1, Name: "Priya"},
		FormData{Rating: 4, Title: "  Solid  ", Content: " Worth watching "})
	require.NoError(t, err)
	assert.Equal(t, "Solid", r.Title)
	assert.Equal(t, "Worth watching", r.Content)
}

func TestVoteHelpfulToggle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, Author{ID: 1, Name: "Priya"}, FormData{Rating: 5, Title: "t", Content: "c"})
	require.NoError(t, err)

	count, err := svc.VoteHelpful(ctx, r.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// same value again: un-vote, back to prior value
	count, err = svc.VoteHelpful(ctx, r.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestVoteHelpfulSwitchMovesByOne(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, Author{ID: 1, Name: "Priya"}, FormData{Rating: 5, Title: "t", Content: "c"})
	require.NoError(t, err)

	count, err := svc.VoteHelpful(ctx, r.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.VoteHelpful(ctx, r.ID, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "switching to not-helpful moves the counter down by one")

	count, err = svc.VoteHelpful(ctx, r.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "switching back moves it up by one, never double counts")
}

func TestVoteNotHelpfulFirstLeavesCounter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, Author{ID: 1, Name: "Priya"}, FormData{Rating: 5, Title: "t", Content: "c"})
	require.NoError(t, err)

	count, err := svc.VoteHelpful(ctx, r.ID, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// un-voting the not-helpful mark also leaves the counter alone
	count, err = svc.VoteHelpful(ctx, r.ID, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestVoteHelpfulIndependentUsers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, Author{ID: 1, Name: "Priya"}, FormData{Rating: 5, Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.VoteHelpful(ctx, r.ID, 2, true)
	require.NoError(t, err)
	count, err := svc.VoteHelpful(ctx, r.ID, 3, true)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestVoteHelpfulUnknownReview(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.VoteHelpful(context.Background(), 999, 2, true)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, Author{ID: 1, Name: "Priya"}, FormData{Rating: 5, Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, r.ID, 99), ErrNotReviewOwner)
	require.NoError(t, svc.Delete(ctx, r.ID, 1))
	assert.ErrorIs(t, svc.Delete(ctx, r.ID, 1), ErrReviewNotFound)
}
