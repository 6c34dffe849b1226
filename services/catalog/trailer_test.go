package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelfeed/models"
)

// stubSearcher scripts the fallback provider: one result list per query,
// in call order.
type stubSearcher struct {
	configured bool
	results    [][]models.VideoCandidate
	errs       []error
	queries    []string
}

func (s *stubSearcher) IsConfigured() bool { return s.configured }

func (s *stubSearcher) Search(_ context.Context, query string, _ int) ([]models.VideoCandidate, error) {
	call := len(s.queries)
	s.queries = append(s.queries, query)
	if call < len(s.errs) && s.errs[call] != nil {
		return nil, s.errs[call]
	}
	if call < len(s.results) {
		return s.results[call], nil
	}
	return nil, nil
}

func video(videoType, name string) models.VideoCandidate {
	return models.VideoCandidate{Key: "k-" + name, Name: name, Site: "YouTube", Type: videoType}
}

func TestResolvePrefersTrailerOverTeaser(t *testing.T) {
	r := NewTrailerResolver(nil)
	videos := []models.VideoCandidate{
		video(models.VideoTypeTeaser, "Teaser 1"),
		video(models.VideoTypeTrailer, "Official Trailer"),
	}

	result := r.Resolve(context.Background(), videos, "Movie", "2024-01-01")

	assert.Equal(t, models.TrailerSourceTMDB, result.Source)
	assert.Equal(t, "Official Trailer", result.Name)
	assert.NotEmpty(t, result.URL)
}

func TestResolveCascadeOrder(t *testing.T) {
	tests := []struct {
		name   string
		videos []models.VideoCandidate
		want   string
	}{
		{
			name: "official trailer beats main trailer",
			videos: []models.VideoCandidate{
				video(models.VideoTypeTrailer, "Main Trailer"),
				video(models.VideoTypeTrailer, "Official Trailer"),
			},
			want: "Official Trailer",
		},
		{
			name: "main trailer beats plain trailer",
			videos: []models.VideoCandidate{
				video(models.VideoTypeTrailer, "Trailer 2"),
				video(models.VideoTypeTrailer, "Main Trailer"),
			},
			want: "Main Trailer",
		},
		{
			name: "first hit within winning predicate",
			videos: []models.VideoCandidate{
				video(models.VideoTypeTrailer, "Official Trailer A"),
				video(models.VideoTypeTrailer, "Official Trailer B"),
			},
			want: "Official Trailer A",
		},
		{
			name: "official teaser beats plain teaser",
			videos: []models.VideoCandidate{
				video(models.VideoTypeTeaser, "Teaser"),
				video(models.VideoTypeTeaser, "Official Teaser"),
			},
			want: "Official Teaser",
		},
		{
			name: "no cascade hit falls back to first hosted video",
			videos: []models.VideoCandidate{
				video("Featurette", "Behind the Scenes"),
				video("Clip", "Scene 4"),
			},
			want: "Behind the Scenes",
		},
	}

	r := NewTrailerResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(context.Background(), tt.videos, "Movie", "")
			require.Equal(t, models.TrailerSourceTMDB, result.Source)
			assert.Equal(t, tt.want, result.Name)
		})
	}
}

func TestResolveIgnoresNonYouTubeVideos(t *testing.T) {
	r := NewTrailerResolver(&stubSearcher{configured: false})
	videos := []models.VideoCandidate{
		{Key: "v1", Name: "Official Trailer", Site: "Vimeo", Type: models.VideoTypeTrailer},
	}

	result := r.Resolve(context.Background(), videos, "Movie", "")

	assert.Equal(t, models.TrailerSourceNone, result.Source)
}

func TestResolveFallbackSelectsBestScored(t *testing.T) {
	search := &stubSearcher{
		configured: true,
		results: [][]models.VideoCandidate{{
			{Key: "yt1", Name: "Movie Title Official Trailer", Site: "YouTube", ChannelTitle: "Netflix"},
		}},
	}
	r := NewTrailerResolver(search)

	result := r.Resolve(context.Background(), nil, "Movie Title", "2022-03-04")

	assert.Equal(t, models.TrailerSourceYouTube, result.Source)
	assert.Equal(t, "yt1", result.VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=yt1", result.URL)
	require.NotEmpty(t, search.queries)
	assert.Equal(t, "Movie Title 2022 official trailer", search.queries[0])
}

func TestResolveFallbackQueryLadder(t *testing.T) {
	// First two queries empty, third yields a usable hit.
	search := &stubSearcher{
		configured: true,
		results: [][]models.VideoCandidate{
			nil,
			nil,
			{{Key: "yt9", Name: "Dune official trailer", Site: "YouTube"}},
		},
	}
	r := NewTrailerResolver(search)

	result := r.Resolve(context.Background(), nil, "Dune", "2021-10-22")

	assert.Equal(t, models.TrailerSourceYouTube, result.Source)
	require.Len(t, search.queries, 3)
	assert.Equal(t, []string{
		"Dune 2021 official trailer",
		"Dune 2021 trailer",
		"Dune official trailer",
	}, search.queries)
}

func TestResolveFallbackSkipsYearQueriesWithoutDate(t *testing.T) {
	search := &stubSearcher{configured: true}
	r := NewTrailerResolver(search)

	result := r.Resolve(context.Background(), nil, "Dune", "")

	assert.Equal(t, models.TrailerSourceNone, result.Source)
	assert.Equal(t, []string{"Dune official trailer", "Dune trailer"}, search.queries)
}

func TestResolveFallbackExcludesNonPositiveScores(t *testing.T) {
	// "reaction" and "fan made" drag both candidates nonpositive; the
	// resolver must keep working down the ladder and end at none.
	junk := []models.VideoCandidate{
		{Key: "r1", Name: "trailer reaction", Site: "YouTube"},             // 6 - 10
		{Key: "r2", Name: "fan made something", Site: "YouTube"},           // -15
		{Key: "r3", Name: "unrelated gameplay video", Site: "YouTube"},     // 0
	}
	search := &stubSearcher{
		configured: true,
		results:    [][]models.VideoCandidate{junk, junk, junk, junk},
	}
	r := NewTrailerResolver(search)

	result := r.Resolve(context.Background(), nil, "Obscure Film", "2020-05-05")

	assert.Equal(t, models.TrailerSourceNone, result.Source)
	assert.Len(t, search.queries, 4, "every ladder query should be tried")
}

func TestResolveFallbackPenalties(t *testing.T) {
	r := NewTrailerResolver(nil)
	w := r.weights

	score := r.scoreFallbackCandidate(models.VideoCandidate{
		Name:         "Movie official trailer review reaction",
		ChannelTitle: "random channel",
	}, "Movie", 0)
	assert.InDelta(t, w.TitleMatch+w.OfficialWord+w.TrailerWord+w.Reaction+w.Review, score, 1e-9)

	score = r.scoreFallbackCandidate(models.VideoCandidate{
		Name:         "Movie Trailer",
		Description:  "released 2022",
		ChannelTitle: "Netflix Anime",
	}, "Movie", 2022)
	assert.InDelta(t, w.TitleMatch+w.TrailerWord+w.YearMatch+w.ChannelMatch, score, 1e-9)
}

func TestResolveFallbackProviderErrorDegrades(t *testing.T) {
	search := &stubSearcher{
		configured: true,
		errs:       []error{errors.New("quota exceeded"), nil},
		results: [][]models.VideoCandidate{
			nil,
			{{Key: "yt2", Name: "Movie trailer", Site: "YouTube"}},
		},
	}
	r := NewTrailerResolver(search)

	result := r.Resolve(context.Background(), nil, "Movie", "2023-01-01")

	assert.Equal(t, models.TrailerSourceYouTube, result.Source, "an erroring query is skipped, not fatal")
	assert.Equal(t, "yt2", result.VideoID)
}

func TestResolveNoneWhenNothingAvailable(t *testing.T) {
	r := NewTrailerResolver(&stubSearcher{configured: false})

	result := r.Resolve(context.Background(), nil, "Movie", "")

	assert.Equal(t, models.NoTrailer(), result)
	assert.False(t, result.Found())
}

func TestResolveNoneWithNilSearcher(t *testing.T) {
	r := NewTrailerResolver(nil)
	result := r.Resolve(context.Background(), nil, "Movie", "2024-01-01")
	assert.Equal(t, models.TrailerSourceNone, result.Source)
}
