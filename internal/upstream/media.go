package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (q MediaQuery) values() url.Values {
	v := url.Values{}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.External != nil {
		v.Set("external", strconv.FormatBool(*q.External))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	return v
}

func (c *Client) SearchMedia(ctx context.Context, q MediaQuery) ([]Media, error) {
	var out []Media
	if err := c.do(ctx, http.MethodGet, "/media", q.values(), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMedia(ctx context.Context, id string) (Media, error) {
	var out Media
	if err := c.do(ctx, http.MethodGet, "/media/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return Media{}, err
	}
	return out, nil
}

func (c *Client) CreateMedia(ctx context.Context, token string, m Media) (Media, error) {
	if err := m.Validate(); err != nil {
		return Media{}, err
	}
	var out Media
	if err := c.do(ctx, http.MethodPost, "/media", nil, token, m, &out); err != nil {
		return Media{}, err
	}
	return out, nil
}
