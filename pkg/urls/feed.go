package urls

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedSource lists movie page links from the site's RSS feed. The calendar
// site publishes each movie page as a post, so the feed doubles as a
// discovery source when a month index page is missing.
type FeedSource struct {
	parser *gofeed.Parser
}

// NewFeedSource creates a new feed source
func NewFeedSource() *FeedSource {
	return &FeedSource{
		parser: gofeed.NewParser(),
	}
}

// Fetch parses the feed at feedURL and returns the item links that pass the
// filters.
func (s *FeedSource) Fetch(ctx context.Context, feedURL string, filters ...LinkFilter) ([]string, error) {
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	return applyFilters(ctx, links, filters)
}
