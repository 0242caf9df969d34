// Package review implements movie review submission, helpful voting
// and rating aggregation.  The logic is storage agnostic: it talks to
// a small Repository interface so the same rules run against MySQL in
// production and an in-memory store in tests.
package review

import (
	"errors"
	"fmt"

	"github.com/nmalhotra/cinebook/internal/model"
)

// ErrReviewNotFound is returned when a review id cannot be resolved.
var ErrReviewNotFound = errors.New("review not found")

// ErrNotReviewOwner is returned when a user tries to delete a review
// written by someone else.
var ErrNotReviewOwner = errors.New("review belongs to another user")

// ValidationError reports a malformed review field.  It is surfaced
// inline to the user; no state mutation occurs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DuplicateReviewError signals a second review attempt for the same
// movie by the same user.  It carries the existing review so callers
// can show it instead of an error dialog that implies retry would
// help.
type DuplicateReviewError struct {
	Existing *model.Review
}

func (e *DuplicateReviewError) Error() string {
	return "user has already reviewed this movie"
}
