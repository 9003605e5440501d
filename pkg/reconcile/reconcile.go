package reconcile

import (
	"sort"
	"strings"

	"streamcal/pkg/domain"
	"streamcal/pkg/platform"
)

// Streaming merges streaming candidate lists from multiple extraction passes
// into one deduplicated list, sorted ascending by date.
//
// Candidates are processed in source order, keyed by lowercased title. The
// first occurrence of a title claims its position in the output. A later
// occurrence replaces the stored entry only when:
//
//   - the stored platform is the generic placeholder and the new one is a
//     specific service (a confirmed platform beats "VOD/Digital"), or
//   - both platforms are specific and the new date is strictly later (the
//     later-observed date is the confirmed streaming date).
//
// Everything else is first-seen wins. Equal dates keep first-encounter order.
func Streaming(sources ...[]domain.Release) []domain.Release {
	seen := make(map[string]int) // lowercased title -> index in merged
	var merged []domain.Release

	for _, source := range sources {
		for _, r := range source {
			key := strings.ToLower(r.Title)
			idx, ok := seen[key]
			if !ok {
				seen[key] = len(merged)
				merged = append(merged, r)
				continue
			}

			held := merged[idx]
			switch {
			case !platform.IsSpecific(held.Platform) && platform.IsSpecific(r.Platform):
				merged[idx] = r
			case platform.IsSpecific(held.Platform) && platform.IsSpecific(r.Platform) && r.Date > held.Date:
				merged[idx] = r
			}
		}
	}

	sortByDate(merged)
	return merged
}

// Theatrical deduplicates theatrical candidate lists by (title, date) and
// sorts ascending by date. Theatrical entries carry no placeholder/confirmed
// distinction, so there is no merge policy: first seen wins outright.
func Theatrical(sources ...[]domain.Release) []domain.Release {
	type key struct {
		title string
		date  string
	}
	seen := make(map[key]bool)
	var merged []domain.Release

	for _, source := range sources {
		for _, r := range source {
			k := key{title: strings.ToLower(r.Title), date: r.Date}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, r)
		}
	}

	sortByDate(merged)
	return merged
}

// sortByDate sorts ascending by ISO date. The sort is stable so same-day
// releases keep their insertion order.
func sortByDate(releases []domain.Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Date < releases[j].Date
	})
}
