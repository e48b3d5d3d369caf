// Package ratings turns rating records into display-ready summaries and
// keeps the local one-rating-per-user invariant after a submission.
package ratings

import (
	"math"

	"github.com/example/criticloud/internal/upstream"
)

// Average returns the arithmetic mean of the rating values rounded to one
// decimal, the presentation value. An empty list averages to 0. No clamping
// or weighting.
func Average(rs []upstream.Rating) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rs {
		sum += r.Rating
	}
	return math.Round(sum/float64(len(rs))*10) / 10
}

// UserRating returns the first record belonging to userID. At most one is
// expected; if the backend ever returns duplicates for the same user the
// first in list order wins and the rest are ignored. An empty userID
// (unauthenticated caller) never matches.
func UserRating(rs []upstream.Rating, userID string) (upstream.Rating, bool) {
	if userID == "" {
		return upstream.Rating{}, false
	}
	for _, r := range rs {
		if r.User.ID == userID {
			return r, true
		}
	}
	return upstream.Rating{}, false
}

// MergeSubmitted folds a freshly created rating into the local list: an
// existing entry for the same user is replaced in place, keeping its
// position; otherwise the rating is appended. The input slice is not
// modified.
func MergeSubmitted(existing []upstream.Rating, submitted upstream.Rating) []upstream.Rating {
	for i, r := range existing {
		if r.User.ID == submitted.User.ID {
			out := make([]upstream.Rating, len(existing))
			copy(out, existing)
			out[i] = submitted
			return out
		}
	}
	out := make([]upstream.Rating, 0, len(existing)+1)
	out = append(out, existing...)
	return append(out, submitted)
}

// Summary is the display-ready aggregate for one media item.
type Summary struct {
	Count      int              `json:"count"`
	Average    float64          `json:"average"`
	UserRating *upstream.Rating `json:"userRating,omitempty"`
}

// Summarize computes count, average and the acting user's own rating in one
// pass over the list.
func Summarize(rs []upstream.Rating, userID string) Summary {
	s := Summary{Count: len(rs), Average: Average(rs)}
	if r, ok := UserRating(rs, userID); ok {
		s.UserRating = &r
	}
	return s
}
