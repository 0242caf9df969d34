// Package repository contains the data access layer, separated from
// HTTP handlers.  Each repository wraps a *sql.DB and exposes typed
// methods for one table family.  Sentinel errors defined here let
// handlers distinguish failure scenarios without string matching.
package repository

import (
	"errors"
	"fmt"
)

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrCinemaNotFound is returned when a cinema lookup yields no rows.
var ErrCinemaNotFound = errors.New("cinema not found")

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrEmailExists is returned when registering an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// StoreError wraps a failure talking to the database so handlers can
// surface the store's message verbatim while callers keep the
// underlying error for errors.Is/As checks.  The submitted payload is
// preserved by the handler, never by this type.
type StoreError struct {
	Op  string // operation that failed, e.g. "insert movie"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
