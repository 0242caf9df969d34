package review

import (
	"sort"

	"github.com/nmalhotra/cinebook/internal/model"
)

// Sort orders accepted by the review listing.  Unknown values fall
// back to SortNewest.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// Sorted returns a copy of reviews ordered for display.  Ties keep
// the stable input order, which matters for reviews sharing a
// timestamp or rating.
func Sorted(reviews []model.Review, order string) []model.Review {
	out := make([]model.Review, len(reviews))
	copy(out, reviews)
	switch order {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortHighest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortLowest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating < out[j].Rating
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
