package catalog

import (
	"math"
	"sort"
	"strings"

	"reelfeed/models"
)

// ScoreWeights holds the composite-score coefficients. The defaults are
// tuned values the frontend ordering depends on; override only for
// experimentation.
type ScoreWeights struct {
	// Popularity multiplies log(max(popularity, 1)). The log damping
	// keeps raw popularity from dominating without bound; the floor of 1
	// avoids log(0).
	Popularity float64
	// Quality multiplies VoteAverage/10, and only applies when VoteCount
	// exceeds MinVotes. Small samples contribute nothing.
	Quality  float64
	MinVotes int
	// Title-match bonuses. These are additive, not mutually exclusive:
	// an exact match also starts with and contains the query, so it
	// collects all three.
	ExactMatch float64
	StartsWith float64
	Contains   float64
	// WordOverlap is added once per (query-word, title-word) pair where
	// either word contains the other. Cartesian by construction, so
	// repeated words multiply contributions.
	WordOverlap float64
}

// DefaultScoreWeights returns the production coefficients.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Popularity:  50,
		Quality:     20,
		MinVotes:    100,
		ExactMatch:  20,
		StartsWith:  15,
		Contains:    30,
		WordOverlap: 5,
	}
}

// Rank orders items by composite score, best first, using the default
// weights. An empty query reduces the score to its popularity and
// quality terms. The sort is stable: equal scores keep fetch order.
func Rank(items []models.MediaItem, query string) []models.MediaItem {
	return RankWeights(items, query, DefaultScoreWeights())
}

// RankWeights is Rank with caller-supplied weights.
func RankWeights(items []models.MediaItem, query string, w ScoreWeights) []models.MediaItem {
	scored := RankScored(items, query, w)
	out := make([]models.MediaItem, len(scored))
	for i, s := range scored {
		out[i] = s.MediaItem
	}
	return out
}

// RankScored ranks and keeps the computed scores attached, for callers
// that surface or log them.
func RankScored(items []models.MediaItem, query string, w ScoreWeights) []models.ScoredItem {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryWords := strings.Fields(queryLower)

	scored := make([]models.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = models.ScoredItem{
			MediaItem: item,
			Score:     scoreItem(item, queryLower, queryWords, w),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreItem(item models.MediaItem, queryLower string, queryWords []string, w ScoreWeights) float64 {
	score := math.Log(math.Max(item.Popularity, 1)) * w.Popularity

	if item.VoteCount > w.MinVotes {
		score += (item.VoteAverage / 10) * w.Quality
	}

	if queryLower == "" {
		return score
	}

	titleLower := strings.ToLower(item.Title)
	if titleLower == queryLower {
		score += w.ExactMatch
	}
	if strings.HasPrefix(titleLower, queryLower) {
		score += w.StartsWith
	}
	if strings.Contains(titleLower, queryLower) {
		score += w.Contains
	}

	for _, qw := range queryWords {
		for _, tw := range strings.Fields(titleLower) {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				score += w.WordOverlap
			}
		}
	}

	return score
}
