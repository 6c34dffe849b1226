package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Media kinds as served to the frontend. "anime" is a presentation-level
// kind: the provider models anime as TV with the animation genre and a
// Japanese origin language, and the adapter tags it on the way in.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
	MediaTypeAnime = "anime"
)

// MediaItem is a single movie, show, or anime entry as normalized from a
// provider list response. Downstream pipeline stages treat it as read-only.
type MediaItem struct {
	ID               int64   `json:"id"`
	MediaType        string  `json:"mediaType"` // "movie" | "tv" | "anime"
	Title            string  `json:"title"`
	Overview         string  `json:"overview,omitempty"`
	ReleaseDate      string  `json:"releaseDate,omitempty"` // YYYY-MM-DD, may be empty
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"voteAverage"` // 0–10
	VoteCount        int     `json:"voteCount"`
	GenreIDs         []int64 `json:"genreIds,omitempty"`
	OriginalLanguage string  `json:"originalLanguage,omitempty"`
	PosterPath       string  `json:"posterPath,omitempty"`
	BackdropPath     string  `json:"backdropPath,omitempty"`
}

// Key returns the identity used for deduplication: media kind plus
// provider-assigned id.
func (m MediaItem) Key() string {
	return m.MediaType + ":" + strconv.FormatInt(m.ID, 10)
}

// ReleaseYear extracts the year from ReleaseDate, or 0 when absent/malformed.
func (m MediaItem) ReleaseYear() int {
	date := strings.TrimSpace(m.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// ScoredItem pairs a MediaItem with its composite ranking score. It only
// exists during ranking; responses carry plain MediaItems.
type ScoredItem struct {
	MediaItem
	Score float64 `json:"score"`
}

// MediaDetail is the full per-title record including nested videos,
// genres by name, and credits. Returned by the detail endpoint only.
type MediaDetail struct {
	MediaItem
	Runtime   int              `json:"runtime,omitempty"` // minutes; movies only
	Seasons   int              `json:"seasons,omitempty"` // tv/anime only
	Status    string           `json:"status,omitempty"`
	Tagline   string           `json:"tagline,omitempty"`
	Genres    []Genre          `json:"genres,omitempty"`
	Videos    []VideoCandidate `json:"videos,omitempty"`
	Cast      []CastMember     `json:"cast,omitempty"`
	Homepage  string           `json:"homepage,omitempty"`
	IMDBID    string           `json:"imdbId,omitempty"`
	Countries []string         `json:"countries,omitempty"`
}

// Genre is a named genre from the detail endpoint.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is a single cast credit.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Order     int    `json:"order"`
	Profile   string `json:"profilePath,omitempty"`
}

// NormalizeMediaType maps loose client input to a canonical media type.
// Unknown values default to movie.
func NormalizeMediaType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tv", "series", "show", "shows":
		return MediaTypeTV
	case "anime":
		return MediaTypeAnime
	case "movie", "movies", "film", "films", "":
		return MediaTypeMovie
	default:
		return MediaTypeMovie
	}
}

// FeedResponse wraps a ranked list with its total for the list endpoints.
type FeedResponse struct {
	Items []MediaItem `json:"items"`
	Total int         `json:"total"`
}

// HomeFeedResponse is the combined payload for the home screen: one
// shelf per source, assembled concurrently server-side.
type HomeFeedResponse struct {
	TrendingMovies []MediaItem `json:"trendingMovies"`
	TrendingTV     []MediaItem `json:"trendingTv"`
	Anime          []MediaItem `json:"anime"`
}

// DetailResponse pairs a full detail record with its resolved trailer.
type DetailResponse struct {
	Detail  *MediaDetail  `json:"detail"`
	Trailer TrailerResult `json:"trailer"`
}

func (m MediaItem) String() string {
	return fmt.Sprintf("%s(%d) %q", m.MediaType, m.ID, m.Title)
}
