package tmdb

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
)

// Minimal TMDB v3 client (bearer auth, list/search/discover/detail
// endpoints we need).

// ErrUnavailable wraps every network or non-2xx failure from TMDB so
// callers can classify provider outages with errors.Is.
var ErrUnavailable = errors.New("tmdb unavailable")

type Client struct {
	apiKey   string
	baseURL  string
	language string
	region   string
	httpc    *http.Client
}

// NewClient builds a TMDB client. httpc may be nil, in which case a
// client with the given timeout is used. There is no retry or backoff:
// a failed call surfaces immediately and the caller decides whether the
// request can degrade.
func NewClient(apiKey, baseURL, language, region string, httpc *http.Client, timeout time.Duration) *Client {
	if httpc == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		region:   region,
		httpc:    httpc,
	}
}

func (c *Client) doGET(ctx context.Context, path string, q url.Values, v any) error {
	if q == nil {
		q = url.Values{}
	}
	if c.language != "" && q.Get("language") == "" {
		q.Set("language", c.language)
	}
	u := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("tmdb build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: GET %s: %s: %s", ErrUnavailable, path, resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("tmdb decode %s: %w", path, err)
	}
	return nil
}
