package model

import "time"

// Movie represents a film that can be browsed and booked.  The column
// set deliberately matches what the movies table accepts: admin form
// fields that have no column (industry, language, duration and so on)
// are dropped before the write and logged by the handler.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title of the movie.
//  Category    – genre/category label (nullable in the table).
//  Description – synopsis shown on the detail page (nullable).
//  PosterURL   – reference to the poster image (nullable).
//  CreatedAt   – timestamp when the row was created.
//  UpdatedAt   – timestamp of last update.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Category    *string   // movies.category (nullable)
	Description *string   // movies.description (nullable)
	PosterURL   *string   // movies.poster_url (nullable)
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
