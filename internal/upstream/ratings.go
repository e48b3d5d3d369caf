package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) SearchRatings(ctx context.Context, q RatingQuery) ([]Rating, error) {
	v := url.Values{}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.MediaID != "" {
		v.Set("mediaId", q.MediaID)
	}
	var out []Rating
	if err := c.do(ctx, http.MethodGet, "/ratings", v, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRating submits a rating on behalf of the authenticated user. The
// backend resolves the user from the bearer token and returns the persisted
// record, which callers merge into local state without a re-fetch.
func (c *Client) CreateRating(ctx context.Context, token string, req NewRatingRequest) (Rating, error) {
	if req.Source == "" {
		req.Source = SourceApp
	}
	var out Rating
	if err := c.do(ctx, http.MethodPost, "/ratings", nil, token, req, &out); err != nil {
		return Rating{}, err
	}
	return out, nil
}
