package model

import "time"

// Cinema represents a movie theatre venue that screens showtimes.
// Amenities are stored as a comma separated list in the table and
// exposed as a slice of tags.  This struct corresponds to a row in
// the `cinemas` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the cinema.
//  Location  – human readable address/area label.
//  Distance  – display distance label (e.g. "2.5 km").
//  Rating    – venue rating between 0 and 5.
//  Amenities – set of amenity tags (IMAX, Parking, ...).
//  CreatedAt – timestamp when the cinema was created.
//  UpdatedAt – timestamp of last update.
type Cinema struct {
	ID        uint64    // cinemas.id
	Name      string    // cinemas.name
	Location  string    // cinemas.location
	Distance  string    // cinemas.distance
	Rating    float64   // cinemas.rating
	Amenities []string  // cinemas.amenities (comma separated column)
	CreatedAt time.Time // cinemas.created_at
	UpdatedAt time.Time // cinemas.updated_at
}
