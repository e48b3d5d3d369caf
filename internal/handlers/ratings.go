package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/example/criticloud/internal/platform/api"
	"github.com/example/criticloud/internal/platform/httpserver"
	"github.com/example/criticloud/internal/ratings"
	"github.com/example/criticloud/internal/upstream"
)

func (g *Gateway) ListRatings(w http.ResponseWriter, r *http.Request) {
	q := upstream.RatingQuery{
		UserID:  strings.TrimSpace(r.URL.Query().Get("userId")),
		MediaID: strings.TrimSpace(r.URL.Query().Get("mediaId")),
	}
	rs, err := g.Upstream.SearchRatings(r.Context(), q)
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": rs})
}

type submitRatingRequest struct {
	MediaID string  `json:"mediaId"`
	Rating  float64 `json:"rating"`
}

type submitRatingResponse struct {
	Rating  upstream.Rating   `json:"rating"`
	Ratings []upstream.Rating `json:"ratings"`
	Summary ratings.Summary   `json:"summary"`
}

// SubmitRating forwards a rating to the backend after the local
// preconditions pass. The merged list in the response is computed from the
// pre-submission state plus the created record, not a re-fetch, so the
// one-rating-per-user invariant holds without a round trip.
func (g *Gateway) SubmitRating(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var req submitRatingRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}

	sess := g.currentSession(r)
	if err := ratings.ValidateSubmission(sess, req.Rating, g.Scale); err != nil {
		g.writeValidationError(w, rid, err)
		return
	}
	if strings.TrimSpace(req.MediaID) == "" {
		api.BadRequest(w, "MISSING_MEDIA_ID", "mediaId is required", rid, nil)
		return
	}

	// Pre-submission state, for the optimistic merge below.
	existing, err := g.Upstream.SearchRatings(r.Context(), upstream.RatingQuery{MediaID: req.MediaID})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	created, err := g.Upstream.CreateRating(r.Context(), sess.Token, upstream.NewRatingRequest{
		MediaID: req.MediaID,
		Rating:  req.Rating,
		Source:  upstream.SourceApp,
	})
	if err != nil {
		g.writeUpstreamError(w, r, err)
		return
	}

	merged := ratings.MergeSubmitted(existing, created)
	api.WriteJSON(w, http.StatusCreated, submitRatingResponse{
		Rating:  created,
		Ratings: merged,
		Summary: ratings.Summarize(merged, sess.User.ID),
	})
}

// writeValidationError surfaces the aggregator's local precondition failures
// with their user-facing messages. No network call has happened by the time
// any of these fire.
func (g *Gateway) writeValidationError(w http.ResponseWriter, rid string, err error) {
	var oor *ratings.OutOfRangeError
	switch {
	case errors.Is(err, ratings.ErrNotLoggedIn):
		api.Unauthorized(w, "AUTH_REQUIRED", "You must be logged in to rate", rid)
	case errors.Is(err, ratings.ErrNoRating):
		api.BadRequest(w, "RATING_REQUIRED", "Please select a rating", rid, nil)
	case errors.As(err, &oor):
		api.BadRequest(w, "RATING_INVALID", oor.Error(), rid, nil)
	default:
		api.BadRequest(w, "INVALID_RATING", err.Error(), rid, nil)
	}
}
