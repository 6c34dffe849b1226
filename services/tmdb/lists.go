package tmdb

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"reelfeed/models"
)

// listItem is the raw shape TMDB returns for one entry across its
// trending, discover, search, and upcoming list endpoints. Movies carry
// title/release_date, shows carry name/first_air_date.
type listItem struct {
	ID               int64   `json:"id"`
	MediaType        string  `json:"media_type"` // only present on trending/all and multi search
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int64 `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
}

type listResponse struct {
	Page         int        `json:"page"`
	Results      []listItem `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// Category fetches one list endpoint (trending/..., discover/...,
// search/..., movie/upcoming, ...) with arbitrary query parameters and
// normalizes the results. mediaType is the kind stamped onto each item;
// when empty, the per-item media_type from the response is used (the
// trending/all shape), with unknown entries dropped.
func (c *Client) Category(ctx context.Context, path string, params url.Values, mediaType string) ([]models.MediaItem, error) {
	var resp listResponse
	if err := c.doGET(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	items := make([]models.MediaItem, 0, len(resp.Results))
	for _, raw := range resp.Results {
		item, ok := normalizeListItem(raw, mediaType)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizeListItem maps a raw list entry onto a MediaItem. Entries with
// no usable title (people from multi search, malformed rows) are dropped.
func normalizeListItem(raw listItem, mediaType string) (models.MediaItem, bool) {
	kind := mediaType
	if kind == "" {
		switch strings.ToLower(strings.TrimSpace(raw.MediaType)) {
		case "movie":
			kind = models.MediaTypeMovie
		case "tv":
			kind = models.MediaTypeTV
		default:
			return models.MediaItem{}, false
		}
	}

	title := strings.TrimSpace(raw.Title)
	date := strings.TrimSpace(raw.ReleaseDate)
	if kind != models.MediaTypeMovie {
		title = strings.TrimSpace(raw.Name)
		date = strings.TrimSpace(raw.FirstAirDate)
	}
	if title == "" {
		return models.MediaItem{}, false
	}

	return models.MediaItem{
		ID:               raw.ID,
		MediaType:        kind,
		Title:            title,
		Overview:         strings.TrimSpace(raw.Overview),
		ReleaseDate:      date,
		Popularity:       raw.Popularity,
		VoteAverage:      raw.VoteAverage,
		VoteCount:        raw.VoteCount,
		GenreIDs:         raw.GenreIDs,
		OriginalLanguage: strings.TrimSpace(raw.OriginalLanguage),
		PosterPath:       raw.PosterPath,
		BackdropPath:     raw.BackdropPath,
	}, true
}

// Trending fetches the weekly trending list for a media kind. Anime is
// modeled as a TV discover query: animation genre, Japanese original
// language, most popular first.
func (c *Client) Trending(ctx context.Context, mediaType string) ([]models.MediaItem, error) {
	switch mediaType {
	case models.MediaTypeAnime:
		params := url.Values{
			"with_genres":            {strconv.FormatInt(animationGenreID, 10)},
			"with_original_language": {"ja"},
			"sort_by":                {"popularity.desc"},
		}
		return c.Category(ctx, "discover/tv", params, models.MediaTypeAnime)
	case models.MediaTypeTV:
		return c.Category(ctx, "trending/tv/week", nil, models.MediaTypeTV)
	default:
		return c.Category(ctx, "trending/movie/week", nil, models.MediaTypeMovie)
	}
}

// animationGenreID is TMDB's genre id for Animation (shared movie/tv).
const animationGenreID int64 = 16

// Upcoming fetches one page of movies with a future theatrical release
// in the configured region.
func (c *Client) Upcoming(ctx context.Context, page int) ([]models.MediaItem, error) {
	params := url.Values{"page": {strconv.Itoa(page)}}
	if c.region != "" {
		params.Set("region", c.region)
	}
	return c.Category(ctx, "movie/upcoming", params, models.MediaTypeMovie)
}

// DiscoverMoviesFrom fetches discover/movie restricted to primary
// release dates at or after the given YYYY-MM-DD date.
func (c *Client) DiscoverMoviesFrom(ctx context.Context, fromDate string, page int) ([]models.MediaItem, error) {
	params := url.Values{
		"primary_release_date.gte": {fromDate},
		"sort_by":                  {"popularity.desc"},
		"page":                     {strconv.Itoa(page)},
	}
	return c.Category(ctx, "discover/movie", params, models.MediaTypeMovie)
}

// DiscoverTVByNetwork fetches discover/tv for a single network id,
// most popular first.
func (c *Client) DiscoverTVByNetwork(ctx context.Context, networkID int64, page int) ([]models.MediaItem, error) {
	params := url.Values{
		"with_networks": {strconv.FormatInt(networkID, 10)},
		"sort_by":       {"popularity.desc"},
		"page":          {strconv.Itoa(page)},
	}
	return c.Category(ctx, "discover/tv", params, models.MediaTypeTV)
}

// DiscoverMoviesByProvider fetches discover/movie for a watch provider
// id in the configured region, most popular first.
func (c *Client) DiscoverMoviesByProvider(ctx context.Context, providerID int64, page int) ([]models.MediaItem, error) {
	params := url.Values{
		"with_watch_providers": {strconv.FormatInt(providerID, 10)},
		"watch_region":         {c.regionOrDefault()},
		"sort_by":              {"popularity.desc"},
		"page":                 {strconv.Itoa(page)},
	}
	return c.Category(ctx, "discover/movie", params, models.MediaTypeMovie)
}

// SearchMovies queries search/movie.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.MediaItem, error) {
	params := url.Values{"query": {query}, "include_adult": {"false"}}
	return c.Category(ctx, "search/movie", params, models.MediaTypeMovie)
}

// SearchTV queries search/tv.
func (c *Client) SearchTV(ctx context.Context, query string) ([]models.MediaItem, error) {
	params := url.Values{"query": {query}, "include_adult": {"false"}}
	return c.Category(ctx, "search/tv", params, models.MediaTypeTV)
}

func (c *Client) regionOrDefault() string {
	if c.region != "" {
		return c.region
	}
	return "US"
}
