package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nmalhotra/cinebook/internal/model"
)

// ReviewRepo is the MySQL implementation of the review service's
// repository interface.  The one-review-per-user-per-movie rule is
// enforced at write time by the service via GetByUserAndMovie, not by
// a table constraint.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the given DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

const reviewColumns = `id, movie_id, user_id, user_name, user_avatar, rating, title, content, helpful, verified, created_at, updated_at`

func scanReview(s scanner) (*model.Review, error) {
	var (
		r         model.Review
		updatedAt sql.NullTime
	)
	if err := s.Scan(&r.ID, &r.MovieID, &r.UserID, &r.UserName, &r.UserAvatar,
		&r.Rating, &r.Title, &r.Content, &r.Helpful, &r.Verified, &r.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		r.UpdatedAt = &t
	}
	return &r, nil
}

// ListByMovie returns all reviews of a movie in insertion order.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the review with the given id, or nil when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

// GetByUserAndMovie returns the user's review of the movie, or nil
// when the user has not reviewed it yet.
func (r *ReviewRepo) GetByUserAndMovie(ctx context.Context, userID, movieID uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = ? AND movie_id = ? LIMIT 1`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, userID, movieID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

// Create inserts a review.  On success the review's ID is populated.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (movie_id, user_id, user_name, user_avatar, rating, title, content, helpful, verified, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.MovieID, rv.UserID, rv.UserName, rv.UserAvatar,
		rv.Rating, rv.Title, rv.Content, rv.Helpful, rv.Verified, rv.CreatedAt)
	if err != nil {
		return &StoreError{Op: "insert review", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return &StoreError{Op: "insert review", Err: err}
	}
	rv.ID = uint64(id)
	return nil
}

// Delete removes a review and its votes.  Ownership is checked by the
// service before calling.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM review_votes WHERE review_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetVote returns the user's helpful vote on a review, or nil.
func (r *ReviewRepo) GetVote(ctx context.Context, reviewID, userID uint64) (*model.ReviewVote, error) {
	const q = `SELECT review_id, user_id, helpful, created_at FROM review_votes
	           WHERE review_id = ? AND user_id = ?`
	var v model.ReviewVote
	err := r.db.QueryRowContext(ctx, q, reviewID, userID).
		Scan(&v.ReviewID, &v.UserID, &v.Helpful, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// ApplyVote atomically stores, replaces or removes the vote row and
// shifts the review's helpful counter by delta.  The vote row and the
// counter move in one transaction so the count never drifts from the
// votes.
func (r *ReviewRepo) ApplyVote(ctx context.Context, reviewID, userID uint64, vote *bool, delta int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if vote == nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM review_votes WHERE review_id = ? AND user_id = ?`, reviewID, userID); err != nil {
			return err
		}
	} else {
		const upsert = `INSERT INTO review_votes (review_id, user_id, helpful) VALUES (?, ?, ?)
		                ON DUPLICATE KEY UPDATE helpful = VALUES(helpful)`
		if _, err := tx.ExecContext(ctx, upsert, reviewID, userID, *vote); err != nil {
			return err
		}
	}
	if delta != 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE reviews SET helpful = helpful + ? WHERE id = ?`, delta, reviewID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
