package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"streamcal/pkg/calendar"
	"streamcal/pkg/content"
	"streamcal/pkg/domain"
	"streamcal/pkg/extract"
	"streamcal/pkg/httpclient"
	"streamcal/pkg/moviepage"
	"streamcal/pkg/urls"
)

// DefaultBaseURL is the calendar site the scraper was written against.
const DefaultBaseURL = "https://whentostream.com"

// defaultDelay spaces out movie-page fetches. Polite fixed sleep, no retry
// machinery.
const defaultDelay = 300 * time.Millisecond

// Service scrapes streaming releases for one month window at a time. Each
// month gets two independent extraction passes — the preview page and the
// per-movie calendar pass — whose candidates are merged downstream by the
// reconciler, never here.
type Service struct {
	client  *httpclient.HTTPClient
	feed    *urls.FeedSource
	baseURL string
	host    string
	feedURL string
	delay   time.Duration
	seen    map[string]bool
}

// New creates a scraper service rooted at baseURL.
func New(baseURL string) *Service {
	host := ""
	if parsed, err := url.Parse(baseURL); err == nil {
		host = parsed.Host
	}
	return &Service{
		client:  httpclient.NewClient(httpclient.ScraperClient, 30*time.Second),
		feed:    urls.NewFeedSource(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		host:    host,
		feedURL: strings.TrimSuffix(baseURL, "/") + "/feed/",
		delay:   defaultDelay,
		seen:    make(map[string]bool),
	}
}

// SetDelay overrides the per-request sleep (tests use 0).
func (s *Service) SetDelay(d time.Duration) {
	s.delay = d
}

// PreviewURL returns the month preview page URL.
func (s *Service) PreviewURL(w calendar.MonthWindow) string {
	return fmt.Sprintf("%s/when-to-streams-%s-%d-preview/", s.baseURL, w.Month, w.Year)
}

// CalendarURL returns the month calendar page URL.
func (s *Service) CalendarURL(w calendar.MonthWindow) string {
	return fmt.Sprintf("%s/streaming-%s-%d/", s.baseURL, w.Month, w.Year)
}

// ScrapeMonth runs both passes for one window and returns their candidates in
// source order (preview first, then calendar). Duplicates between the passes
// are expected; the reconciler resolves them.
func (s *Service) ScrapeMonth(ctx context.Context, w calendar.MonthWindow) ([]domain.Release, error) {
	previewReleases, ok := s.scrapePreview(ctx, w)
	if !ok {
		// No preview available for this month, the calendar pass is all
		// there is.
		log.Printf("No preview available for %s %d, using calendar page only", w.Month, w.Year)
		return s.ScrapeCalendar(ctx, w)
	}

	calendarReleases, err := s.ScrapeCalendar(ctx, w)
	if err != nil {
		// The preview pass already produced candidates; a broken calendar
		// page shouldn't throw them away.
		log.Printf("Calendar pass for %s %d failed: %v", w.Month, w.Year, err)
		return previewReleases, nil
	}

	return append(previewReleases, calendarReleases...), nil
}

// scrapePreview fetches the month preview page and runs the release block
// extractor over its text. ok=false means the page is missing or has no
// movie data (the site serves its homepage for unknown preview URLs).
func (s *Service) scrapePreview(ctx context.Context, w calendar.MonthWindow) ([]domain.Release, bool) {
	previewURL := s.PreviewURL(w)
	log.Printf("Fetching streaming preview: %s", previewURL)

	html, err := s.client.GetString(ctx, previewURL)
	if err != nil {
		log.Printf("Preview failed: %v", err)
		return nil, false
	}
	if !strings.Contains(html, "Synopsis:") {
		log.Printf("Preview page has no movie data")
		return nil, false
	}

	lines, err := content.Lines(html)
	if err != nil {
		log.Printf("Preview parse failed: %v", err)
		return nil, false
	}

	return extract.Releases(lines), true
}

// ScrapeCalendar runs the calendar pass: discover movie detail links on the
// month index page, fetch each one, and keep the releases dated inside the
// window. When the index page itself is missing, the site feed stands in as
// the link source.
func (s *Service) ScrapeCalendar(ctx context.Context, w calendar.MonthWindow) ([]domain.Release, error) {
	links, err := s.discoverLinks(ctx, w)
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d movie links", len(links))

	var releases []domain.Release
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return releases, err
		}
		time.Sleep(s.delay)

		release, ok := s.scrapeMoviePage(ctx, link, w)
		if ok {
			s.seen[link] = true
			releases = append(releases, release)
		}
	}
	return releases, nil
}

// discoverLinks lists movie detail links for the window, preferring the month
// index page and falling back to the feed. Adjacent month pages link some of
// the same movies; links that already produced a release this run are
// filtered out here.
func (s *Service) discoverLinks(ctx context.Context, w calendar.MonthWindow) ([]string, error) {
	filters := []urls.LinkFilter{
		urls.NewHostFilter(s.host),
		urls.NewIndexPageFilter(),
		urls.NewSeenFilter(s.seen),
	}

	calendarURL := s.CalendarURL(w)
	log.Printf("Fetching calendar page: %s", calendarURL)

	html, err := s.client.GetString(ctx, calendarURL)
	if err != nil {
		log.Printf("Calendar page failed (%v), trying site feed", err)
		links, feedErr := s.feed.Fetch(ctx, s.feedURL, filters...)
		if feedErr != nil {
			return nil, fmt.Errorf("calendar page and feed both failed: %w", feedErr)
		}
		return links, nil
	}

	return urls.MovieLinks(ctx, html, w.Year, filters...)
}

// scrapeMoviePage fetches one movie detail page and turns it into a release
// candidate. ok=false covers every soft miss: fetch failure, no dated line,
// or a date outside the window.
func (s *Service) scrapeMoviePage(ctx context.Context, pageURL string, w calendar.MonthWindow) (domain.Release, bool) {
	html, err := s.client.GetString(ctx, pageURL)
	if err != nil {
		log.Printf("Error fetching %s: %v", pageURL, err)
		return domain.Release{}, false
	}

	lines, err := content.Lines(html)
	if err != nil {
		log.Printf("Error parsing %s: %v", pageURL, err)
		return domain.Release{}, false
	}

	info := moviepage.Parse(pageURL, lines)
	if info.Title == "" {
		// URL gave us nothing; fall back to the page's own title.
		if title, err := content.Title(html); err == nil {
			info.Title = title
		}
	}

	if info.Title == "" || info.Date == "" || info.Platform == "" {
		return domain.Release{}, false
	}
	if !w.Contains(info.Date) {
		log.Printf("Skipping %s: date %s not in %s", info.Title, info.Date, w.Prefix())
		return domain.Release{}, false
	}

	return domain.Release{
		Title:    info.Title,
		Date:     info.Date,
		Platform: info.Platform,
		Synopsis: info.Synopsis,
		Kind:     domain.KindStreaming,
	}, true
}
