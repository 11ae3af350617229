// Package upstream is the HTTP client for the external posts API. The gateway
// relays status and body; it owns none of the resource's business logic.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirpyerre/posts-gateway/internal/api/metrics"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.PostGateway against a JSONPlaceholder-style API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the API rooted at baseURL. A non-positive
// timeout falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, "list", http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Create(ctx context.Context, post domain.Post) (*domain.Post, error) {
	var created domain.Post
	if err := c.do(ctx, "create", http.MethodPost, "/posts", &post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, id int64, post domain.Post) (*domain.Post, error) {
	post.ID = id
	var updated domain.Post
	if err := c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/posts/%d", id), &post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

// Ping reports whether the upstream answers at all; used by the readiness
// probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/posts/1", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("upstream ping: status %d", resp.StatusCode)
	}
	return nil
}

// do performs one upstream round-trip: encode the optional body, relay the
// response into out, and map upstream statuses onto domain errors.
func (c *Client) do(ctx context.Context, operation, method, path string, body *domain.Post, out any) error {
	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(timer).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode post: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s: %w", operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrPostNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("upstream %s: unexpected status %d", operation, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
