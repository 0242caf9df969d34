package review

import (
	"context"
	"strings"
	"time"

	"github.com/nmalhotra/cinebook/internal/model"
)

// Repository is the capability set the review service needs from
// storage.  The MySQL implementation lives in internal/repository;
// tests use the in-memory implementation in this package.
type Repository interface {
	ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error)
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID uint64) (*model.Review, error)
	Create(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, id uint64) error
	GetVote(ctx context.Context, reviewID, userID uint64) (*model.ReviewVote, error)
	// ApplyVote atomically stores (vote non-nil), replaces or removes
	// (vote nil) the user's vote row and shifts the review's helpful
	// counter by delta.
	ApplyVote(ctx context.Context, reviewID, userID uint64, vote *bool, delta int) error
}

// Author identifies the submitting user as provided by the identity
// collaborator.
type Author struct {
	ID     uint64
	Name   string
	Avatar *string
}

// FormData carries the review form fields.  Verified is the user's
// self-declared "I watched this" flag; the service stores it as given
// and performs no independent verification.
type FormData struct {
	Rating   int
	Title    string
	Content  string
	Verified bool
}

// Service enforces the review write contracts on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time // injectable clock
}

// NewService wires a Service to its repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// ListByMovie returns a movie's reviews in the requested sort order.
func (s *Service) ListByMovie(ctx context.Context, movieID uint64, order string) ([]model.Review, error) {
	reviews, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return Sorted(reviews, order), nil
}

// Stats returns the derived rating summary for a movie.
func (s *Service) Stats(ctx context.Context, movieID uint64) (model.ReviewStats, error) {
	reviews, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return model.ReviewStats{}, err
	}
	return ComputeStats(reviews, movieID), nil
}

// Submit creates a review for the movie.  It fails with
// ValidationError when the rating is outside 1..5 or title/content
// are empty after trimming, and with DuplicateReviewError (carrying
// the existing review) when the user has already reviewed the movie.
// On success the review starts with a zero helpful counter.
func (s *Service) Submit(ctx context.Context, movieID uint64, author Author, data FormData) (*model.Review, error) {
	if data.Rating < 1 || data.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	title := strings.TrimSpace(data.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	content := strings.TrimSpace(data.Content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "must not be empty"}
	}
	if existing, err := s.repo.GetByUserAndMovie(ctx, author.ID, movieID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateReviewError{Existing: existing}
	}
	r := &model.Review{
		MovieID:    movieID,
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Rating:     data.Rating,
		Title:      title,
		Content:    content,
		Helpful:    0,
		Verified:   data.Verified,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the user's own review.  ErrNotReviewOwner is
// returned when the review belongs to someone else.
func (s *Service) Delete(ctx context.Context, reviewID, userID uint64) error {
	r, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrReviewNotFound
	}
	if r.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.repo.Delete(ctx, reviewID)
}

// VoteHelpful toggles the user's helpful/not-helpful mark on a
// review and returns the new helpful count.  Re-invoking with the
// same value removes the vote, returning the counter to its prior
// value; switching the value moves the counter by exactly one in the
// new direction.  The counter itself is the number of helpful=true
// votes, so a not-helpful first vote leaves it untouched.
func (s *Service) VoteHelpful(ctx context.Context, reviewID, userID uint64, helpful bool) (int, error) {
	r, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return 0, err
	}
	if r == nil {
		return 0, ErrReviewNotFound
	}
	existing, err := s.repo.GetVote(ctx, reviewID, userID)
	if err != nil {
		return 0, err
	}
	var vote *bool
	delta := 0
	switch {
	case existing == nil:
		// first vote
		vote = &helpful
		if helpful {
			delta = 1
		}
	case existing.Helpful == helpful:
		// same value again: un-vote
		vote = nil
		if helpful {
			delta = -1
		}
	default:
		// switched sides
		vote = &helpful
		if helpful {
			delta = 1
		} else {
			delta = -1
		}
	}
	if err := s.repo.ApplyVote(ctx, reviewID, userID, vote, delta); err != nil {
		return 0, err
	}
	return r.Helpful + delta, nil
}
