package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"reelfeed/models"
)

// TrailerWeights holds the scoring coefficients for search-fallback
// trailer candidates. Negative values are penalties.
type TrailerWeights struct {
	TitleMatch   float64 // result title contains the media title
	YearMatch    float64 // title or description mentions the release year
	OfficialWord float64 // "official" in the result title
	TrailerWord  float64 // "trailer" in the result title
	ChannelMatch float64 // channel on the official-channel allow-list
	Reaction     float64
	Review       float64
	FanMade      float64
}

// DefaultTrailerWeights returns the production coefficients.
func DefaultTrailerWeights() TrailerWeights {
	return TrailerWeights{
		TitleMatch:   10,
		YearMatch:    5,
		OfficialWord: 8,
		TrailerWord:  6,
		ChannelMatch: 10,
		Reaction:     -10,
		Review:       -10,
		FanMade:      -15,
	}
}

// officialChannels is the allow-list of channels whose uploads count as
// official. Matched case-insensitively as a substring of the channel name.
var officialChannels = []string{
	"netflix",
	"hbo",
	"max",
	"prime video",
	"amazon",
	"apple tv",
	"disney",
	"pixar",
	"marvel",
	"warner bros",
	"sony pictures",
	"universal pictures",
	"paramount",
	"lionsgate",
	"20th century",
	"a24",
	"crunchyroll",
	"aniplex",
	"toho",
}

// fallbackSearchResults caps how many hits each fallback query requests.
const fallbackSearchResults = 5

// videoSearcher is the secondary provider used when a title's own
// videos yield nothing.
type videoSearcher interface {
	IsConfigured() bool
	Search(ctx context.Context, query string, maxResults int) ([]models.VideoCandidate, error)
}

// TrailerResolver picks the best trailer for a title: first from the
// provider-supplied videos list, then via video search. It never fails;
// when both stages come up empty the result is the explicit "none".
type TrailerResolver struct {
	search  videoSearcher
	weights TrailerWeights
}

// NewTrailerResolver builds a resolver. search may be nil or
// unconfigured, which disables the fallback stage.
func NewTrailerResolver(search videoSearcher) *TrailerResolver {
	return &TrailerResolver{search: search, weights: DefaultTrailerWeights()}
}

// NewTrailerResolverWeights builds a resolver with custom fallback weights.
func NewTrailerResolverWeights(search videoSearcher, w TrailerWeights) *TrailerResolver {
	return &TrailerResolver{search: search, weights: w}
}

// Resolve runs the two-stage selection. videos is the title's own
// candidate list from the metadata provider; title and releaseDate feed
// the fallback queries and scoring.
func (r *TrailerResolver) Resolve(ctx context.Context, videos []models.VideoCandidate, title, releaseDate string) models.TrailerResult {
	if picked := pickPrimaryTrailer(videos); picked != nil {
		return models.TrailerResult{
			Source:  models.TrailerSourceTMDB,
			VideoID: picked.Key,
			Name:    picked.Name,
			URL:     watchURL(picked.Key),
		}
	}
	return r.searchFallback(ctx, title, releaseDate)
}

// primaryCascade is the ordered predicate list for provider-supplied
// videos, most specific first. The first predicate with any match wins
// and the first matching candidate within it is chosen.
var primaryCascade = []func(models.VideoCandidate) bool{
	func(v models.VideoCandidate) bool { return isType(v, models.VideoTypeTrailer) && nameHas(v, "official") },
	func(v models.VideoCandidate) bool { return isType(v, models.VideoTypeTrailer) && nameHas(v, "main") },
	func(v models.VideoCandidate) bool { return isType(v, models.VideoTypeTrailer) },
	func(v models.VideoCandidate) bool { return isType(v, models.VideoTypeTeaser) && nameHas(v, "official") },
	func(v models.VideoCandidate) bool { return isType(v, models.VideoTypeTeaser) },
}

// pickPrimaryTrailer selects from the platform-hosted subset of the
// provider's videos. A non-empty subset with no cascade hit still
// yields its first element as a last resort; an empty subset fails the
// primary stage.
func pickPrimaryTrailer(videos []models.VideoCandidate) *models.VideoCandidate {
	hosted := make([]models.VideoCandidate, 0, len(videos))
	for _, v := range videos {
		if v.IsYouTube() && strings.TrimSpace(v.Key) != "" {
			hosted = append(hosted, v)
		}
	}
	if len(hosted) == 0 {
		return nil
	}
	for _, matches := range primaryCascade {
		for i := range hosted {
			if matches(hosted[i]) {
				return &hosted[i]
			}
		}
	}
	return &hosted[0]
}

// searchFallback works through a most-to-least specific query ladder,
// stopping at the first query that yields at least one positively
// scored candidate. Provider errors are logged and treated as an empty
// query result.
func (r *TrailerResolver) searchFallback(ctx context.Context, title, releaseDate string) models.TrailerResult {
	if r.search == nil || !r.search.IsConfigured() {
		return models.NoTrailer()
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.NoTrailer()
	}

	year := yearOf(releaseDate)
	for _, query := range buildTrailerQueries(title, year) {
		results, err := r.search.Search(ctx, query, fallbackSearchResults)
		if err != nil {
			log.Printf("[trailer] fallback search failed query=%q err=%v", query, err)
			continue
		}
		if best, score, ok := r.bestCandidate(results, title, year); ok {
			log.Printf("[trailer] fallback selected %q (score=%.0f) for %q", best.Name, score, title)
			return models.TrailerResult{
				Source:  models.TrailerSourceYouTube,
				VideoID: best.Key,
				Name:    best.Name,
				URL:     watchURL(best.Key),
			}
		}
	}
	return models.NoTrailer()
}

// buildTrailerQueries returns the query ladder. The year-qualified
// forms are skipped when the release year is unknown.
func buildTrailerQueries(title string, year int) []string {
	queries := make([]string, 0, 4)
	if year > 0 {
		queries = append(queries,
			fmt.Sprintf("%s %d official trailer", title, year),
			fmt.Sprintf("%s %d trailer", title, year),
		)
	}
	queries = append(queries,
		title+" official trailer",
		title+" trailer",
	)
	return queries
}

// bestCandidate scores all results and returns the highest-scoring one.
// Candidates scoring zero or below are excluded; ties keep the earlier
// result.
func (r *TrailerResolver) bestCandidate(results []models.VideoCandidate, title string, year int) (models.VideoCandidate, float64, bool) {
	var best models.VideoCandidate
	bestScore := 0.0
	found := false
	for _, candidate := range results {
		score := r.scoreFallbackCandidate(candidate, title, year)
		if score <= 0 {
			continue
		}
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}

func (r *TrailerResolver) scoreFallbackCandidate(c models.VideoCandidate, title string, year int) float64 {
	nameLower := strings.ToLower(c.Name)
	descLower := strings.ToLower(c.Description)
	channelLower := strings.ToLower(c.ChannelTitle)
	score := 0.0

	if strings.Contains(nameLower, strings.ToLower(title)) {
		score += r.weights.TitleMatch
	}
	if year > 0 {
		yearStr := fmt.Sprintf("%d", year)
		if strings.Contains(nameLower, yearStr) || strings.Contains(descLower, yearStr) {
			score += r.weights.YearMatch
		}
	}
	if strings.Contains(nameLower, "official") {
		score += r.weights.OfficialWord
	}
	if strings.Contains(nameLower, "trailer") {
		score += r.weights.TrailerWord
	}
	for _, channel := range officialChannels {
		if strings.Contains(channelLower, channel) {
			score += r.weights.ChannelMatch
			break
		}
	}
	if strings.Contains(nameLower, "reaction") {
		score += r.weights.Reaction
	}
	if strings.Contains(nameLower, "review") {
		score += r.weights.Review
	}
	if strings.Contains(nameLower, "fan made") {
		score += r.weights.FanMade
	}
	return score
}

func isType(v models.VideoCandidate, videoType string) bool {
	return strings.EqualFold(strings.TrimSpace(v.Type), videoType)
}

func nameHas(v models.VideoCandidate, word string) bool {
	return strings.Contains(strings.ToLower(v.Name), word)
}

func yearOf(releaseDate string) int {
	return models.MediaItem{ReleaseDate: releaseDate}.ReleaseYear()
}

func watchURL(key string) string {
	return "https://www.youtube.com/watch?v=" + key
}
