// Package upstream is the typed HTTP client for the remote CritiCloud REST
// backend. Calls are single-shot: failures surface to the caller once and
// retrying is a user action, never automatic.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrNotFound covers both 404 responses and by-external-id searches
	// that come back empty.
	ErrNotFound = errors.New("upstream: not found")
	// ErrUnauthorized is the cross-cutting 401 signal. The session layer
	// reacts by clearing stored credentials.
	ErrUnauthorized = errors.New("upstream: unauthorized")
)

// StatusError is any other non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: status %d body=%q", e.Code, e.Body)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	CB         *gobreaker.CircuitBreaker
	Log        *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.CB = cb }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.Log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

const maxResponseBytes = 2 << 20

func (c *Client) do(ctx context.Context, method, path string, q url.Values, token string, in, out any) error {
	call := func() error { return c.doOnce(ctx, method, path, q, token, in, out) }
	if c.CB == nil {
		return call()
	}
	_, err := c.CB.Execute(func() (any, error) { return nil, call() })
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, q url.Values, token string, in, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.Log.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(b), 200)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("upstream: decode %s %s: %w", method, path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Live probes the backend's GET /test endpoint and returns its raw body.
func (c *Client) Live(ctx context.Context) (string, error) {
	u := c.BaseURL + "/test"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: truncate(string(b), 200)}
	}
	return string(b), nil
}
