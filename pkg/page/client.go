package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Version is the key-figures release, also sent in the User-Agent header.
const Version = "1.0.0"

// ErrNotFound is returned when the page does not exist at its source.
var ErrNotFound = errors.New("page not found")

// Client fetches rendered course pages over HTTP.
type Client struct {
	httpClient *http.Client
	retries    int
	backoff    time.Duration
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the overall timeout of one request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets how many attempts Fetch makes before giving up (at least 1).
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.retries = n
	}
}

// WithBackoff sets the base pause between attempts. Attempt n waits n*d.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a page client. Defaults: 30s timeout, 3 attempts, 2s backoff.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retries:   3,
		backoff:   2 * time.Second,
		userAgent: "key-figures/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the page at url. Transport errors, 429 and 5xx responses are retried
// with a linear backoff; a 404 returns ErrNotFound; any other non-200 status fails at once.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		body, retry, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
		if !retry || attempt == c.retries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("%s: %w", url, ErrNotFound)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}
	return body, false, nil
}

// IsURL reports whether source names an http(s) location rather than a file.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load returns the page at source: fetched with client when source is a URL, read from
// disk otherwise. A nil client uses NewClient defaults.
func Load(ctx context.Context, client *Client, source string) ([]byte, error) {
	if IsURL(source) {
		if client == nil {
			client = NewClient()
		}
		return client.Fetch(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", source, ErrNotFound)
		}
		return nil, fmt.Errorf("read page: %w", err)
	}
	return data, nil
}
