// Package booking implements the checkout flow: seat selection state
// and the staged draft that carries movie, cinema, showtime and seats
// towards confirmation.  Nothing here is persisted; a draft either
// reaches confirmation or is discarded.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDraftNotFound is returned by the draft store when the requested
// draft does not exist or has expired.
var ErrDraftNotFound = errors.New("draft not found")

// ErrNotDraftOwner is returned when a user addresses a draft created
// by someone else.
var ErrNotDraftOwner = errors.New("draft belongs to another user")

// PreconditionError signals that a draft stage was reached without
// its required predecessor fields.  It is a logic fault of the
// calling flow: the draft refuses to proceed and names the missing
// fields instead of guessing defaults.
type PreconditionError struct {
	Missing []string // field names required but absent, in stage order
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("booking precondition failed: missing %s", strings.Join(e.Missing, ", "))
}

// ValidationError reports a malformed value in a booking request.
// It is surfaced inline to the user and causes no state mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
