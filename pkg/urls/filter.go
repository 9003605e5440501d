package urls

import (
	"context"
	"net/url"
	"strings"
)

// LinkFilter decides whether a discovered link should be kept.
type LinkFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// HostFilter keeps only links pointing at the calendar site itself.
type HostFilter struct {
	host string
}

// NewHostFilter creates a filter that keeps links whose host contains host.
func NewHostFilter(host string) *HostFilter {
	return &HostFilter{host: host}
}

// ShouldKeep returns false for off-site links and links that don't parse.
func (f *HostFilter) ShouldKeep(ctx context.Context, link string) (bool, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return false, nil
	}
	return strings.Contains(parsed.Host, f.host), nil
}

// IndexPageFilter drops the month index pages themselves — the calendar page
// links to its streaming and theatrical siblings, and neither is a movie
// detail page.
type IndexPageFilter struct{}

// NewIndexPageFilter creates a new index page filter
func NewIndexPageFilter() *IndexPageFilter {
	return &IndexPageFilter{}
}

// ShouldKeep returns false for streaming/theatrical month index links.
func (f *IndexPageFilter) ShouldKeep(ctx context.Context, link string) (bool, error) {
	if strings.Contains(link, "streaming-") || strings.Contains(link, "theaters-") {
		return false, nil
	}
	return true, nil
}

// SeenFilter drops links that already exist in the provided set, e.g. movie
// pages that already produced a release earlier in the run.
type SeenFilter struct {
	seen map[string]bool
}

// NewSeenFilter creates a new already-seen filter
func NewSeenFilter(seen map[string]bool) *SeenFilter {
	return &SeenFilter{seen: seen}
}

// ShouldKeep returns false if the link is already in the seen set.
func (f *SeenFilter) ShouldKeep(ctx context.Context, link string) (bool, error) {
	return !f.seen[link], nil
}

// applyFilters runs links through every filter, keeping order and dropping
// duplicates.
func applyFilters(ctx context.Context, links []string, filters []LinkFilter) ([]string, error) {
	var kept []string
	unique := make(map[string]bool)

	for _, link := range links {
		if unique[link] {
			continue
		}
		keep := true
		for _, f := range filters {
			ok, err := f.ShouldKeep(ctx, link)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			unique[link] = true
			kept = append(kept, link)
		}
	}
	return kept, nil
}
