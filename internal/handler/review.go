package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nmalhotra/cinebook/internal/repository"
	"github.com/nmalhotra/cinebook/internal/review"
)

// ReviewHandler exposes the review read and write endpoints.  Listing
// and stats are public; submitting, deleting and voting require an
// authenticated customer.
type ReviewHandler struct {
	Svc    *review.Service
	Movies *repository.MovieRepo
	Users  *repository.UserRepo
}

func NewReviewHandler(svc *review.Service, movies *repository.MovieRepo, users *repository.UserRepo) *ReviewHandler {
	if svc == nil || movies == nil || users == nil {
		panic("nil dependency passed to NewReviewHandler")
	}
	return &ReviewHandler{Svc: svc, Movies: movies, Users: users}
}

type submitReviewReq struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Verified bool   `json:"verified"`
}

type voteReq struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

// reviewError maps review domain errors onto HTTP responses.
func reviewError(c echo.Context, err error) error {
	var dup *review.DuplicateReviewError
	var val *review.ValidationError
	switch {
	case errors.Is(err, review.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	case errors.Is(err, review.ErrNotReviewOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.As(err, &dup):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "you already reviewed this movie",
			"existing": dup.Existing,
		})
	case errors.As(err, &val):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": val.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// ensureMovie verifies the movie exists before touching its reviews.
func (h *ReviewHandler) ensureMovie(c echo.Context, id uint64) error {
	if _, err := h.Movies.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return nil
}

// ListReviews handles GET /v1/movies/:id/reviews.  Supports
// ?sort=newest|oldest|highest|lowest (default newest).
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ensureMovie(c, movieID); err != nil {
		return err
	}
	order := strings.TrimSpace(c.QueryParam("sort"))
	reviews, err := h.Svc.ListByMovie(c.Request().Context(), movieID, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}

// GetReviewStats handles GET /v1/movies/:id/reviews/stats.
func (h *ReviewHandler) GetReviewStats(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ensureMovie(c, movieID); err != nil {
		return err
	}
	stats, err := h.Svc.Stats(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

// SubmitReview handles POST /v1/movies/:id/reviews.  One review per
// user per movie; a duplicate returns 409 carrying the existing
// review.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ensureMovie(c, movieID); err != nil {
		return err
	}
	var req submitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	rv, err := h.Svc.Submit(ctx, movieID, review.Author{ID: u.ID, Name: u.Name}, review.FormData{
		Rating:   req.Rating,
		Title:    req.Title,
		Content:  req.Content,
		Verified: req.Verified,
	})
	if err != nil {
		return reviewError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}

// DeleteReview handles DELETE /v1/reviews/:id.  Only the author may
// delete, and deletion discards the review's helpful votes with it.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), reviewID, userID); err != nil {
		return reviewError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// VoteReview handles POST /v1/reviews/:id/vote.  Body content
// {"helpful": true|false}.  Repeating the same vote withdraws it;
// switching sides moves the counter by exactly one.
func (h *ReviewHandler) VoteReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req voteReq
	if err := c.Bind(&req); err != nil || req.Helpful == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "helpful is required"})
	}

	helpfulCount, err := h.Svc.VoteHelpful(c.Request().Context(), reviewID, userID, *req.Helpful)
	if err != nil {
		return reviewError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"helpful": helpfulCount})
}
