package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelfeed/models"
)

// Minimal YouTube Data API v3 client (search endpoint only). Used as
// the fallback trailer source when a title carries no usable videos of
// its own.

// ErrUnavailable wraps every network or non-2xx failure from the
// YouTube API so callers can classify provider outages with errors.Is.
var ErrUnavailable = errors.New("youtube unavailable")

type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient builds a YouTube search client. An empty apiKey is allowed;
// the client then reports itself unconfigured and Search fails fast
// without a network call.
func NewClient(apiKey, baseURL string, httpc *http.Client, timeout time.Duration) *Client {
	if httpc == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpc = &http.Client{Timeout: timeout}
	}
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// IsConfigured reports whether the client has an API key.
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// searchResponse is the raw shape of GET /search.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search runs one video search and returns the hits as VideoCandidates.
// Results are always typed as YouTube-hosted with no provider type
// classification; the trailer resolver scores them on text signals.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.VideoCandidate, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
		"key":        {c.apiKey},
	}
	u := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrUnavailable, query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: search %q: %s: %s", ErrUnavailable, query, resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("youtube decode search %q: %w", query, err)
	}

	candidates := make([]models.VideoCandidate, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		videoID := strings.TrimSpace(item.ID.VideoID)
		if videoID == "" {
			continue
		}
		candidates = append(candidates, models.VideoCandidate{
			Key:          videoID,
			Name:         strings.TrimSpace(item.Snippet.Title),
			Site:         "YouTube",
			ChannelTitle: strings.TrimSpace(item.Snippet.ChannelTitle),
			Description:  item.Snippet.Description,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return candidates, nil
}
