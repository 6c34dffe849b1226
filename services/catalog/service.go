package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"reelfeed/config"
	"reelfeed/models"
	"reelfeed/services/tmdb"
)

// ErrAllSourcesFailed reports that every provider call behind an
// aggregate operation failed. Individual source failures are isolated
// and logged; only a total failure propagates.
var ErrAllSourcesFailed = errors.New("all sources failed")

// metadataProvider is the slice of the TMDB client the service uses.
type metadataProvider interface {
	Trending(ctx context.Context, mediaType string) ([]models.MediaItem, error)
	Upcoming(ctx context.Context, page int) ([]models.MediaItem, error)
	DiscoverMoviesFrom(ctx context.Context, fromDate string, page int) ([]models.MediaItem, error)
	DiscoverTVByNetwork(ctx context.Context, networkID int64, page int) ([]models.MediaItem, error)
	DiscoverMoviesByProvider(ctx context.Context, providerID int64, page int) ([]models.MediaItem, error)
	SearchMovies(ctx context.Context, query string) ([]models.MediaItem, error)
	SearchTV(ctx context.Context, query string) ([]models.MediaItem, error)
	Detail(ctx context.Context, mediaType string, id int64) (*models.MediaDetail, error)
}

var _ metadataProvider = (*tmdb.Client)(nil)

// Service is the aggregation core: it fans out to the metadata
// provider, pushes results through dedup/filter/rank, and resolves
// trailers. All state is per-request; the service itself only holds
// configuration and clients.
type Service struct {
	provider      metadataProvider
	resolver      *TrailerResolver
	exclusions    []Predicate
	enrichWorkers int
}

// NewService wires the service from its collaborators. search may be
// nil; trailer resolution then has no fallback stage.
func NewService(provider metadataProvider, search videoSearcher, cfg *config.Config) *Service {
	var exclusions []Predicate
	workers := 8
	if cfg != nil {
		if len(cfg.ExcludedGenres) > 0 {
			exclusions = append(exclusions, ExcludeGenres(cfg.ExcludedGenres...))
		}
		if cfg.EnrichWorkers > 0 {
			workers = cfg.EnrichWorkers
		}
	}
	return &Service{
		provider:      provider,
		resolver:      NewTrailerResolver(search),
		exclusions:    exclusions,
		enrichWorkers: workers,
	}
}

// HomeFeed assembles the home screen shelves: trending movies, trending
// TV, and popular anime, fetched concurrently. A failed shelf is logged
// and served empty; only all three failing is an error.
func (s *Service) HomeFeed(ctx context.Context) (*models.HomeFeedResponse, error) {
	resp := &models.HomeFeedResponse{
		TrendingMovies: []models.MediaItem{},
		TrendingTV:     []models.MediaItem{},
		Anime:          []models.MediaItem{},
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failed  int
		lastErr error
	)
	fetchShelf := func(mediaType string, dest *[]models.MediaItem) {
		defer wg.Done()
		items, err := s.provider.Trending(ctx, mediaType)
		if err != nil {
			log.Printf("[catalog] home shelf %s failed: %v", mediaType, err)
			mu.Lock()
			failed++
			lastErr = err
			mu.Unlock()
			return
		}
		*dest = s.rankPopular(items)
	}

	wg.Add(3)
	go fetchShelf(models.MediaTypeMovie, &resp.TrendingMovies)
	go fetchShelf(models.MediaTypeTV, &resp.TrendingTV)
	go fetchShelf(models.MediaTypeAnime, &resp.Anime)
	wg.Wait()

	if failed == 3 {
		return nil, fmt.Errorf("%w: home feed: %v", ErrAllSourcesFailed, lastErr)
	}
	return resp, nil
}

// Trending returns the ranked trending list for one media kind.
func (s *Service) Trending(ctx context.Context, mediaType string) ([]models.MediaItem, error) {
	items, err := s.provider.Trending(ctx, mediaType)
	if err != nil {
		return nil, err
	}
	return s.rankPopular(items), nil
}

// upcomingPages is how many provider pages the upcoming feed combines.
const upcomingPages = 2

// Upcoming merges the provider's upcoming list with a discover query
// for future releases, then dedupes, drops already-released titles, and
// orders by popularity. Source priority: upcoming pages, then discover.
func (s *Service) Upcoming(ctx context.Context) ([]models.MediaItem, error) {
	today := time.Now().Format("2006-01-02")

	sources := make([][]models.MediaItem, upcomingPages+1)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failed  int
		lastErr error
	)
	fail := func(err error) {
		mu.Lock()
		failed++
		lastErr = err
		mu.Unlock()
	}

	for page := 1; page <= upcomingPages; page++ {
		page := page
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := s.provider.Upcoming(ctx, page)
			if err != nil {
				log.Printf("[catalog] upcoming page %d failed: %v", page, err)
				fail(err)
				return
			}
			sources[page-1] = items
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		items, err := s.provider.DiscoverMoviesFrom(ctx, today, 1)
		if err != nil {
			log.Printf("[catalog] upcoming discover failed: %v", err)
			fail(err)
			return
		}
		sources[upcomingPages] = items
	}()
	wg.Wait()

	if failed == len(sources) {
		return nil, fmt.Errorf("%w: upcoming: %v", ErrAllSourcesFailed, lastErr)
	}

	merged := Dedupe(Aggregate(sources...), nil)
	merged = FilterExcluded(merged, s.withBaseExclusions(ExcludeReleasedBefore(startOfDay(time.Now())))...)
	return Rank(merged, ""), nil
}

// Search fans out the query to the movie and TV indexes concurrently,
// merges, dedupes, and ranks by relevance to the query. One index
// failing is tolerated; both failing is an error.
func (s *Service) Search(ctx context.Context, query string) ([]models.MediaItem, error) {
	var (
		wg       sync.WaitGroup
		movies   []models.MediaItem
		shows    []models.MediaItem
		movieErr error
		tvErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		movies, movieErr = s.provider.SearchMovies(ctx, query)
	}()
	go func() {
		defer wg.Done()
		shows, tvErr = s.provider.SearchTV(ctx, query)
	}()
	wg.Wait()

	if movieErr != nil && tvErr != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrAllSourcesFailed, query, tvErr)
	}
	if movieErr != nil {
		log.Printf("[catalog] movie search failed for %q: %v", query, movieErr)
	}
	if tvErr != nil {
		log.Printf("[catalog] tv search failed for %q: %v", query, tvErr)
	}

	merged := Dedupe(Aggregate(movies, shows), nil)
	merged = FilterExcluded(merged, s.exclusions...)
	return Rank(merged, query), nil
}

// PlatformCatalog returns one streaming platform's shelf: its original
// series by network plus its movie catalog by watch provider, fetched
// concurrently, merged, and popularity-ranked.
func (s *Service) PlatformCatalog(ctx context.Context, platformID string, page int) ([]models.MediaItem, error) {
	platform, ok := PlatformByID(platformID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platformID)
	}
	if page <= 0 {
		page = 1
	}

	var (
		wg       sync.WaitGroup
		shows    []models.MediaItem
		movies   []models.MediaItem
		showErr  error
		movieErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		shows, showErr = s.provider.DiscoverTVByNetwork(ctx, platform.NetworkID, page)
	}()
	go func() {
		defer wg.Done()
		movies, movieErr = s.provider.DiscoverMoviesByProvider(ctx, platform.WatchProviderID, page)
	}()
	wg.Wait()

	if showErr != nil && movieErr != nil {
		return nil, fmt.Errorf("%w: platform %s: %v", ErrAllSourcesFailed, platformID, movieErr)
	}
	if showErr != nil {
		log.Printf("[catalog] platform %s tv failed: %v", platformID, showErr)
	}
	if movieErr != nil {
		log.Printf("[catalog] platform %s movies failed: %v", platformID, movieErr)
	}

	return s.rankPopular(Aggregate(shows, movies)), nil
}

// Details fetches one title's full record and resolves its trailer.
func (s *Service) Details(ctx context.Context, mediaType string, id int64) (*models.DetailResponse, error) {
	detail, err := s.provider.Detail(ctx, mediaType, id)
	if err != nil {
		return nil, err
	}
	trailer := s.resolver.Resolve(ctx, detail.Videos, detail.Title, detail.ReleaseDate)
	return &models.DetailResponse{Detail: detail, Trailer: trailer}, nil
}

// Trailer resolves a trailer for one title. A failed detail fetch is
// treated as an empty primary stage so resolution can still fall back
// to search when the caller supplied a title hint.
func (s *Service) Trailer(ctx context.Context, mediaType string, id int64, titleHint string) models.TrailerResult {
	detail, err := s.provider.Detail(ctx, mediaType, id)
	if err != nil {
		log.Printf("[catalog] trailer detail fetch failed %s/%d: %v", mediaType, id, err)
		return s.resolver.Resolve(ctx, nil, titleHint, "")
	}
	return s.resolver.Resolve(ctx, detail.Videos, detail.Title, detail.ReleaseDate)
}

// EnrichDetails fetches full details for every item in parallel,
// bounded by the configured worker count. A single item's failure is
// isolated: it resolves to the original list entry without the detail
// fields rather than aborting the batch. Output order matches input.
func (s *Service) EnrichDetails(ctx context.Context, items []models.MediaItem) []models.MediaDetail {
	out := make([]models.MediaDetail, len(items))
	workers := pool.New().WithMaxGoroutines(s.enrichWorkers)
	for i, item := range items {
		i, item := i, item
		workers.Go(func() {
			detail, err := s.provider.Detail(ctx, item.MediaType, item.ID)
			if err != nil {
				log.Printf("[catalog] enrich failed for %s: %v", item, err)
				out[i] = models.MediaDetail{MediaItem: item}
				return
			}
			out[i] = *detail
		})
	}
	workers.Wait()
	return out
}

// ResolveTrailer exposes the resolver directly for callers that already
// hold a candidate list.
func (s *Service) ResolveTrailer(ctx context.Context, videos []models.VideoCandidate, title, releaseDate string) models.TrailerResult {
	return s.resolver.Resolve(ctx, videos, title, releaseDate)
}

// rankPopular dedupes, applies the configured exclusions, and orders by
// the query-less (popularity) score.
func (s *Service) rankPopular(items []models.MediaItem) []models.MediaItem {
	merged := Dedupe(items, nil)
	merged = FilterExcluded(merged, s.exclusions...)
	return Rank(merged, "")
}

func (s *Service) withBaseExclusions(extra ...Predicate) []Predicate {
	return append(append([]Predicate{}, s.exclusions...), extra...)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
