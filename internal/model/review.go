package model

import "time"

// Review is a user's rating and write-up for a movie.  A user may
// hold at most one review per movie; the constraint is enforced at
// write time in the review service, not by the table schema.
// Verified is a self-declared "I watched this" flag and is never
// independently audited.
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie the review belongs to.
//  UserID     – author of the review.
//  UserName   – display name captured at submission time.
//  UserAvatar – optional avatar URL.
//  Rating     – star rating, integer 1..5 inclusive.
//  Title      – short headline of the review.
//  Content    – review body.
//  Helpful    – count of users who marked the review helpful.
//  Verified   – self-declared watched flag.
//  CreatedAt  – submission timestamp.
//  UpdatedAt  – set when the review is edited (nullable).
type Review struct {
	ID         uint64     `json:"id"`          // reviews.id
	MovieID    uint64     `json:"movie_id"`    // reviews.movie_id
	UserID     uint64     `json:"user_id"`     // reviews.user_id
	UserName   string     `json:"user_name"`   // reviews.user_name
	UserAvatar *string    `json:"user_avatar"` // reviews.user_avatar (nullable)
	Rating     int        `json:"rating"`      // reviews.rating
	Title      string     `json:"title"`       // reviews.title
	Content    string     `json:"content"`     // reviews.content
	Helpful    int        `json:"helpful"`     // reviews.helpful
	Verified   bool       `json:"verified"`    // reviews.verified
	CreatedAt  time.Time  `json:"created_at"`  // reviews.created_at
	UpdatedAt  *time.Time `json:"updated_at"`  // reviews.updated_at (nullable)
}

// ReviewVote captures one user's helpful/not-helpful mark on a
// review.  Re-submitting the same value removes the vote; switching
// the value moves the helpful counter by exactly one.
//
// Fields:
//  ReviewID  – review being voted on.
//  UserID    – voting user.
//  Helpful   – true for a helpful mark, false for not helpful.
//  CreatedAt – when the vote was first cast.
type ReviewVote struct {
	ReviewID  uint64    // review_votes.review_id
	UserID    uint64    // review_votes.user_id
	Helpful   bool      // review_votes.helpful
	CreatedAt time.Time // review_votes.created_at
}

// ReviewStats is derived from the reviews of one movie and is never
// stored.  AverageRating is 0 when there are no reviews.
type ReviewStats struct {
	AverageRating      float64     `json:"average_rating"`
	TotalReviews       int         `json:"total_reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
