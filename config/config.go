package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every knob the server and provider clients need. It is
// built once in main and passed explicitly to each constructor; nothing
// in this repo reads the environment after startup.
type Config struct {
	// HTTP server
	Port string

	// TMDB metadata provider
	TMDBAPIKey  string
	TMDBBaseURL string

	// YouTube Data API (secondary trailer search). Optional: when the
	// key is empty, trailer resolution skips the search fallback.
	YouTubeAPIKey  string
	YouTubeBaseURL string

	// Language/region sent with TMDB list requests.
	Language string
	Region   string

	// Timeout applied to each outbound provider call.
	HTTPTimeout time.Duration

	// Max parallel per-item detail fetches during enrichment.
	EnrichWorkers int

	// Genre IDs excluded from every feed (e.g. talk shows on home shelves).
	ExcludedGenres []int64
}

const (
	defaultPort          = "8090"
	defaultTMDBBaseURL   = "https://api.themoviedb.org/3"
	defaultYouTubeBase   = "https://www.googleapis.com/youtube/v3"
	defaultLanguage      = "en-US"
	defaultRegion        = "US"
	defaultHTTPTimeout   = 15 * time.Second
	defaultEnrichWorkers = 8
)

// FromEnv builds a Config from environment variables, applying defaults
// for everything except the TMDB key.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           envOr("PORT", defaultPort),
		TMDBAPIKey:     strings.TrimSpace(os.Getenv("TMDB_API_KEY")),
		TMDBBaseURL:    envOr("TMDB_BASE_URL", defaultTMDBBaseURL),
		YouTubeAPIKey:  strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		YouTubeBaseURL: envOr("YOUTUBE_BASE_URL", defaultYouTubeBase),
		Language:       envOr("TMDB_LANGUAGE", defaultLanguage),
		Region:         envOr("TMDB_REGION", defaultRegion),
		HTTPTimeout:    defaultHTTPTimeout,
		EnrichWorkers:  defaultEnrichWorkers,
	}

	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SECONDS")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS %q", v)
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	if v := strings.TrimSpace(os.Getenv("ENRICH_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid ENRICH_WORKERS %q", v)
		}
		cfg.EnrichWorkers = n
	}

	if v := strings.TrimSpace(os.Getenv("EXCLUDED_GENRES")); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid genre id %q in EXCLUDED_GENRES", part)
			}
			cfg.ExcludedGenres = append(cfg.ExcludedGenres, id)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
