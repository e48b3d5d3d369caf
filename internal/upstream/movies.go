package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) SearchMovies(ctx context.Context, q MovieQuery) ([]Movie, error) {
	v := url.Values{}
	if q.IMDBID != "" {
		v.Set("imdbId", q.IMDBID)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	var out []Movie
	if err := c.do(ctx, http.MethodGet, "/movies", v, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMovie(ctx context.Context, id string) (Movie, error) {
	var out Movie
	if err := c.do(ctx, http.MethodGet, "/movies/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return Movie{}, err
	}
	return out, nil
}

func (c *Client) CreateMovie(ctx context.Context, token string, m Movie) (Movie, error) {
	var out Movie
	if err := c.do(ctx, http.MethodPost, "/movies", nil, token, m, &out); err != nil {
		return Movie{}, err
	}
	return out, nil
}

func (c *Client) SearchSeries(ctx context.Context, q SeriesQuery) ([]Series, error) {
	v := url.Values{}
	if q.IMDBID != "" {
		v.Set("imdbId", q.IMDBID)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	var out []Series
	if err := c.do(ctx, http.MethodGet, "/series", v, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSeries(ctx context.Context, id string) (Series, error) {
	var out Series
	if err := c.do(ctx, http.MethodGet, "/series/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return Series{}, err
	}
	return out, nil
}
