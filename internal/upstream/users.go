package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, u User) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/users", nil, "", u, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}
