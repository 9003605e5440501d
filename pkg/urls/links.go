package urls

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MovieLinks extracts candidate movie detail-page links from a calendar page.
// A movie page carries the release year in its path ("/some-film-2025/"); the
// month index pages also do, so callers pass an IndexPageFilter (and usually
// a HostFilter) to cut those out.
func MovieLinks(ctx context.Context, htmlContent string, year int, filters ...LinkFilter) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	yearMarker := fmt.Sprintf("-%d/", year)

	var links []string
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, yearMarker) {
			links = append(links, href)
		}
	})

	return applyFilters(ctx, links, filters)
}
