package review

import "github.com/nmalhotra/cinebook/internal/model"

// ComputeStats derives the rating summary for one movie from a slice
// of reviews.  Input reviews for other movies are filtered out, so
// callers may pass a mixed collection.  With no matching reviews the
// average is 0 (never a division by zero) and the distribution holds
// an explicit zero for every star value 1..5.  Ratings outside 1..5
// are ignored; Submit rejects them, but stats read whatever the rows
// say and must keep their shape regardless.
func ComputeStats(reviews []model.Review, movieID uint64) model.ReviewStats {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	total := 0
	sum := 0
	for _, r := range reviews {
		if r.MovieID != movieID || r.Rating < 1 || r.Rating > 5 {
			continue
		}
		total++
		sum += r.Rating
		dist[r.Rating]++
	}
	avg := 0.0
	if total > 0 {
		avg = float64(sum) / float64(total)
	}
	return model.ReviewStats{
		AverageRating:      avg,
		TotalReviews:       total,
		RatingDistribution: dist,
	}
}
