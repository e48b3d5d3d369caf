package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) SearchGames(ctx context.Context, q GameQuery) ([]Game, error) {
	v := url.Values{}
	if q.IGDBID != "" {
		v.Set("igdbId", q.IGDBID)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	var out []Game
	if err := c.do(ctx, http.MethodGet, "/games", v, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetGame(ctx context.Context, id string) (Game, error) {
	var out Game
	if err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return Game{}, err
	}
	return out, nil
}
