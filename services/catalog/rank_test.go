package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelfeed/models"
)

func scoreOf(t *testing.T, m models.MediaItem, query string) float64 {
	t.Helper()
	scored := RankScored([]models.MediaItem{m}, query, DefaultScoreWeights())
	require.Len(t, scored, 1)
	return scored[0].Score
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, "avatar"))
	assert.Empty(t, Rank([]models.MediaItem{}, ""))
}

func TestRankZeroValueItemDoesNotPanic(t *testing.T) {
	// Missing popularity, rating, and vote count all contribute zero.
	score := scoreOf(t, models.MediaItem{Title: "Bare"}, "")
	assert.Equal(t, 0.0, score, "log(max(0,1))*50 is 0 and the quality gate is closed")
}

func TestRankPopularityTermIsLogDamped(t *testing.T) {
	m := models.MediaItem{Title: "X", Popularity: 100}
	score := scoreOf(t, m, "")
	assert.InDelta(t, math.Log(100)*50, score, 1e-9)
}

func TestRankPopularityMonotonic(t *testing.T) {
	lo := models.MediaItem{Title: "X", Popularity: 10}
	hi := models.MediaItem{Title: "X", Popularity: 11}
	assert.LessOrEqual(t, scoreOf(t, lo, "x"), scoreOf(t, hi, "x"))
}

func TestRankQualityGate(t *testing.T) {
	gated := models.MediaItem{Title: "X", VoteAverage: 9.8, VoteCount: 100}
	open := models.MediaItem{Title: "X", VoteAverage: 9.8, VoteCount: 101}

	assert.Equal(t, 0.0, scoreOf(t, gated, ""), "voteCount <= 100 contributes exactly 0 regardless of rating")
	assert.InDelta(t, (9.8/10)*20, scoreOf(t, open, ""), 1e-9)
}

func TestRankQualityMonotonicAboveGate(t *testing.T) {
	lo := models.MediaItem{Title: "X", VoteAverage: 7.0, VoteCount: 500}
	hi := models.MediaItem{Title: "X", VoteAverage: 7.5, VoteCount: 500}
	assert.LessOrEqual(t, scoreOf(t, lo, ""), scoreOf(t, hi, ""))
}

func TestRankExactMatchStacksAllTitleBonuses(t *testing.T) {
	// An exact match also starts with and contains the query, so the
	// three bonuses stack: 20 + 15 + 30 = 65, plus one word-overlap pair.
	m := models.MediaItem{Title: "Avatar"}
	score := scoreOf(t, m, "avatar")
	assert.InDelta(t, 20+15+30+5, score, 1e-9)
}

func TestRankExactMatchOutranksLongerTitle(t *testing.T) {
	exact := models.MediaItem{ID: 1, Title: "Avatar", Popularity: 50}
	sequel := models.MediaItem{ID: 2, Title: "Avatar: The Way of Water", Popularity: 50}

	ranked := Rank([]models.MediaItem{sequel, exact}, "avatar")

	require.Len(t, ranked, 2)
	assert.Equal(t, int64(1), ranked[0].ID, "exact match must rank above same-popularity partial match")
}

func TestRankWordOverlapIsCartesian(t *testing.T) {
	// query "the the" against title "the thing": four (qw, tw) pairs
	// where one word contains the other — "the"x"the" twice plus
	// "the"x"thing" twice ("thing" contains "the").
	m := models.MediaItem{Title: "the thing"}
	score := scoreOf(t, m, "the the")
	// No exact/starts-with/contains: "the thing" does not contain "the the".
	assert.InDelta(t, 4*5, score, 1e-9)
}

func TestRankStableOnEqualScores(t *testing.T) {
	items := []models.MediaItem{
		{ID: 10, Title: "Same", Popularity: 42},
		{ID: 11, Title: "Same", Popularity: 42},
		{ID: 12, Title: "Same", Popularity: 42},
	}
	ranked := Rank(items, "")
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(10), ranked[0].ID)
	assert.Equal(t, int64(11), ranked[1].ID)
	assert.Equal(t, int64(12), ranked[2].ID)
}

func TestRankDescending(t *testing.T) {
	items := []models.MediaItem{
		{ID: 1, Title: "low", Popularity: 2},
		{ID: 2, Title: "high", Popularity: 2000},
		{ID: 3, Title: "mid", Popularity: 200},
	}
	ranked := RankScored(items, "", DefaultScoreWeights())
	require.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	assert.Equal(t, int64(2), ranked[0].ID)
}

func TestRankWeightsOverride(t *testing.T) {
	w := DefaultScoreWeights()
	w.Popularity = 0
	w.WordOverlap = 0

	m := models.MediaItem{Title: "Dune", Popularity: 1000}
	scored := RankScored([]models.MediaItem{m}, "dune", w)
	require.Len(t, scored, 1)
	assert.InDelta(t, 20+15+30, scored[0].Score, 1e-9)
}

func TestRankCaseInsensitive(t *testing.T) {
	m := models.MediaItem{Title: "AVATAR"}
	assert.InDelta(t, 20+15+30+5, scoreOf(t, m, "AvAtAr"), 1e-9)
}
