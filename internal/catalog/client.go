// Package catalog is a client for the TMDB movie catalog API.
//
// It issues exactly one request per call: /discover/movie for an empty query,
// /search/movie otherwise. There is no caching and no retry; callers retry
// by searching again.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/logging"
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = errors.New("catalog API key is not configured")

	// ErrNetwork marks failures to complete the HTTP exchange.
	ErrNetwork = errors.New("catalog request failed")

	// ErrUpstream marks non-success responses from the API.
	ErrUpstream = errors.New("catalog returned an error status")
)

// UpstreamError describes a non-2xx catalog response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("catalog API error (status %d): %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUpstream) match any UpstreamError.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Searcher is what the UI needs from the catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Movie, error)
}

var _ Searcher = (*Client)(nil)

// Client talks to the catalog REST API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	hasKey  bool
	client  *http.Client
}

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// New builds a Client from catalog config. A missing API key is allowed;
// Search reports ErrMissingAPIKey instead.
func New(cfg config.Catalog) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = config.DefaultCatalogURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("catalog base URL %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	key, ok := cfg.Credential()
	return &Client{
		baseURL: base,
		apiKey:  key,
		hasKey:  ok,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.hasKey
}

// Search returns the movies matching query, or the default discover listing
// when query is empty. Zero matches is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	if !c.hasKey {
		return nil, ErrMissingAPIKey
	}

	reqURL := c.endpoint(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}

	movies := page.Results
	if movies == nil {
		movies = []Movie{}
	}

	logging.Debug("catalog search complete",
		"query", query,
		"results", len(movies),
		"dur", time.Since(start).Round(time.Millisecond))
	return movies, nil
}

// endpoint builds the request URL. The key and query go through url.Values,
// which escapes them.
func (c *Client) endpoint(query string) string {
	values := url.Values{}
	values.Set("api_key", c.apiKey)

	path := "/discover/movie"
	if query != "" {
		path = "/search/movie"
		values.Set("query", query)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = values.Encode()
	return u.String()
}
