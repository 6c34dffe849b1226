package models

import "strings"

// Video type classifications as reported by the metadata provider.
const (
	VideoTypeTrailer = "Trailer"
	VideoTypeTeaser  = "Teaser"
)

// Trailer sources. A TrailerResult always carries exactly one of these,
// so callers can tell "no trailer" apart from a missing field.
const (
	TrailerSourceTMDB    = "tmdb"
	TrailerSourceYouTube = "youtube"
	TrailerSourceNone    = "none"
)

// VideoCandidate is one promotional video attached to a title, either
// from the metadata provider's videos list or from a search fallback hit.
type VideoCandidate struct {
	Key          string `json:"key"` // provider video id (YouTube key)
	Name         string `json:"name"`
	Site         string `json:"site"` // hosting platform, e.g. "YouTube"
	Type         string `json:"type"` // "Trailer" | "Teaser" | other
	ChannelTitle string `json:"channelTitle,omitempty"`
	Description  string `json:"description,omitempty"`
	Official     bool   `json:"official,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
}

// IsYouTube reports whether the candidate is hosted on YouTube.
func (v VideoCandidate) IsYouTube() bool {
	return strings.EqualFold(strings.TrimSpace(v.Site), "youtube")
}

// TrailerResult is the terminal outcome of trailer resolution. Source is
// always set; when it is TrailerSourceNone the other fields are empty.
type TrailerResult struct {
	Source  string `json:"source"` // "tmdb" | "youtube" | "none"
	VideoID string `json:"videoId,omitempty"`
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
}

// NoTrailer is the explicit "none" outcome.
func NoTrailer() TrailerResult {
	return TrailerResult{Source: TrailerSourceNone}
}

// Found reports whether resolution produced a playable trailer.
func (t TrailerResult) Found() bool {
	return t.Source != TrailerSourceNone && t.VideoID != ""
}
