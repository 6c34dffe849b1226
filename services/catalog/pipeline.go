package catalog

import (
	"strings"
	"time"

	"reelfeed/models"
)

// Aggregate concatenates independently fetched result lists into one
// candidate sequence. Relative order within each source is preserved and
// sources appear in the order given, which is the caller's priority
// order. No dedup or filtering happens here.
func Aggregate(sources ...[]models.MediaItem) []models.MediaItem {
	total := 0
	for _, src := range sources {
		total += len(src)
	}
	out := make([]models.MediaItem, 0, total)
	for _, src := range sources {
		out = append(out, src...)
	}
	return out
}

// KeyFunc derives the identity used for deduplication.
type KeyFunc func(models.MediaItem) string

// DefaultKey is (media kind, provider id).
func DefaultKey(m models.MediaItem) string {
	return m.Key()
}

// Dedupe returns a new sequence retaining only the first occurrence of
// each key, preserving input order. Runs in linear time via set
// membership. A nil keyFn means DefaultKey.
func Dedupe(items []models.MediaItem, keyFn KeyFunc) []models.MediaItem {
	if keyFn == nil {
		keyFn = DefaultKey
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		key := keyFn(item)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Predicate marks a MediaItem for exclusion when it returns true.
// Predicates are pure; FilterExcluded keeps items matching none of them.
type Predicate func(models.MediaItem) bool

// ExcludeGenres excludes items carrying any of the given genre ids.
func ExcludeGenres(ids ...int64) Predicate {
	blacklist := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		blacklist[id] = struct{}{}
	}
	return func(m models.MediaItem) bool {
		for _, g := range m.GenreIDs {
			if _, banned := blacklist[g]; banned {
				return true
			}
		}
		return false
	}
}

// ExcludeLanguagesExcept excludes items whose original language is not
// in the allow-list. Items with no language recorded are kept.
func ExcludeLanguagesExcept(allow ...string) Predicate {
	allowed := make(map[string]struct{}, len(allow))
	for _, lang := range allow {
		allowed[strings.ToLower(strings.TrimSpace(lang))] = struct{}{}
	}
	return func(m models.MediaItem) bool {
		lang := strings.ToLower(strings.TrimSpace(m.OriginalLanguage))
		if lang == "" {
			return false
		}
		_, ok := allowed[lang]
		return !ok
	}
}

// ExcludeReleasedBefore excludes items dated strictly before the given
// date. Items with no release date are kept: absence of a date is not
// evidence the item is old.
func ExcludeReleasedBefore(threshold time.Time) Predicate {
	return datePredicate(func(d time.Time) bool { return d.Before(threshold) })
}

// ExcludeReleasedAfter excludes items dated strictly after the given date.
func ExcludeReleasedAfter(threshold time.Time) Predicate {
	return datePredicate(func(d time.Time) bool { return d.After(threshold) })
}

func datePredicate(exclude func(time.Time) bool) Predicate {
	return func(m models.MediaItem) bool {
		raw := strings.TrimSpace(m.ReleaseDate)
		if raw == "" {
			return false
		}
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return false
		}
		return exclude(date)
	}
}

// FilterExcluded returns the items for which none of the exclusion
// predicates match. With no predicates the input is returned as-is.
func FilterExcluded(items []models.MediaItem, predicates ...Predicate) []models.MediaItem {
	if len(predicates) == 0 {
		return items
	}
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		excluded := false
		for _, matches := range predicates {
			if matches(item) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, item)
		}
	}
	return out
}
