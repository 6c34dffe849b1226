package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"reelfeed/models"
)

// detailResponse is the raw shape of GET /movie/{id} and GET /tv/{id}
// with append_to_response=videos,credits,external_ids.
type detailResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Homepage         string  `json:"homepage"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	Runtime          int     `json:"runtime"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Genres           []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	OriginCountry []string `json:"origin_country"`
	Videos        struct {
		Results []struct {
			Key         string `json:"key"`
			Name        string `json:"name"`
			Site        string `json:"site"`
			Type        string `json:"type"`
			Official    bool   `json:"official"`
			PublishedAt string `json:"published_at"`
		} `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []struct {
			Name        string `json:"name"`
			Character   string `json:"character"`
			Order       int    `json:"order"`
			ProfilePath string `json:"profile_path"`
		} `json:"cast"`
	} `json:"credits"`
	ExternalIDs struct {
		IMDBID string `json:"imdb_id"`
	} `json:"external_ids"`
}

// detailCastLimit caps how many cast credits a detail response carries.
const detailCastLimit = 12

// Detail fetches the full record for one title, including its videos
// list used by trailer resolution. The anime kind shares the TV
// endpoint but is stamped back onto the result.
func (c *Client) Detail(ctx context.Context, mediaType string, id int64) (*models.MediaDetail, error) {
	path := fmt.Sprintf("movie/%d", id)
	if mediaType == models.MediaTypeTV || mediaType == models.MediaTypeAnime {
		path = fmt.Sprintf("tv/%d", id)
	}
	params := url.Values{"append_to_response": {"videos,credits,external_ids"}}

	var resp detailResponse
	if err := c.doGET(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return normalizeDetail(resp, mediaType), nil
}

func normalizeDetail(resp detailResponse, mediaType string) *models.MediaDetail {
	title := strings.TrimSpace(resp.Title)
	date := strings.TrimSpace(resp.ReleaseDate)
	if mediaType != models.MediaTypeMovie {
		title = strings.TrimSpace(resp.Name)
		date = strings.TrimSpace(resp.FirstAirDate)
	}

	detail := &models.MediaDetail{
		MediaItem: models.MediaItem{
			ID:               resp.ID,
			MediaType:        mediaType,
			Title:            title,
			Overview:         strings.TrimSpace(resp.Overview),
			ReleaseDate:      date,
			Popularity:       resp.Popularity,
			VoteAverage:      resp.VoteAverage,
			VoteCount:        resp.VoteCount,
			OriginalLanguage: strings.TrimSpace(resp.OriginalLanguage),
			PosterPath:       resp.PosterPath,
			BackdropPath:     resp.BackdropPath,
		},
		Runtime:   resp.Runtime,
		Seasons:   resp.NumberOfSeasons,
		Status:    strings.TrimSpace(resp.Status),
		Tagline:   strings.TrimSpace(resp.Tagline),
		Homepage:  strings.TrimSpace(resp.Homepage),
		IMDBID:    strings.TrimSpace(resp.ExternalIDs.IMDBID),
		Countries: resp.OriginCountry,
	}

	for _, g := range resp.Genres {
		detail.GenreIDs = append(detail.GenreIDs, g.ID)
		detail.Genres = append(detail.Genres, models.Genre{ID: g.ID, Name: g.Name})
	}

	for _, v := range resp.Videos.Results {
		key := strings.TrimSpace(v.Key)
		if key == "" {
			continue
		}
		detail.Videos = append(detail.Videos, models.VideoCandidate{
			Key:         key,
			Name:        strings.TrimSpace(v.Name),
			Site:        strings.TrimSpace(v.Site),
			Type:        strings.TrimSpace(v.Type),
			Official:    v.Official,
			PublishedAt: v.PublishedAt,
		})
	}

	for i, member := range resp.Credits.Cast {
		if i >= detailCastLimit {
			break
		}
		detail.Cast = append(detail.Cast, models.CastMember{
			Name:      member.Name,
			Character: member.Character,
			Order:     member.Order,
			Profile:   member.ProfilePath,
		})
	}

	return detail
}
