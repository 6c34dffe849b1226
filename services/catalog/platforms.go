package catalog

import "errors"

// ErrUnknownPlatform reports a platform id outside the fixed registry.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform maps a streaming service onto the provider's two id spaces:
// NetworkID for discover/tv (who aired it) and WatchProviderID for
// discover/movie (where it streams).
type Platform struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	NetworkID       int64  `json:"-"`
	WatchProviderID int64  `json:"-"`
}

// platforms is the fixed catalog registry. IDs are TMDB's.
var platforms = []Platform{
	{ID: "netflix", Name: "Netflix", NetworkID: 213, WatchProviderID: 8},
	{ID: "prime", Name: "Prime Video", NetworkID: 1024, WatchProviderID: 9},
	{ID: "disney", Name: "Disney+", NetworkID: 2739, WatchProviderID: 337},
	{ID: "apple", Name: "Apple TV+", NetworkID: 2552, WatchProviderID: 350},
	{ID: "hbo", Name: "HBO Max", NetworkID: 49, WatchProviderID: 1899},
}

// Platforms returns the registry in display order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// PlatformByID looks up a platform by its route id.
func PlatformByID(id string) (Platform, bool) {
	for _, p := range platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}
