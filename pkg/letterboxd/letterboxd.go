package letterboxd

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"streamcal/pkg/httpclient"
	"streamcal/pkg/slug"
)

// DefaultBaseURL is the public Letterboxd site.
const DefaultBaseURL = "https://letterboxd.com"

// defaultDelay spaces out page fetches between slug attempts.
const defaultDelay = 300 * time.Millisecond

// Rating is what a film page lookup yields. Rating and Poster are nil when
// the page doesn't expose them.
type Rating struct {
	Rating *float64
	URL    string
	Poster *string
}

// Client fetches film pages and scrapes rating and poster from their meta
// tags.
type Client struct {
	client  *httpclient.HTTPClient
	baseURL string
	delay   time.Duration
}

// NewClient creates a Letterboxd client rooted at baseURL (tests point it at
// a mock server, everything else passes DefaultBaseURL).
func NewClient(baseURL string) *Client {
	return &Client{
		client:  httpclient.NewClient(httpclient.BrowserClient, 10*time.Second),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		delay:   defaultDelay,
	}
}

// SetDelay overrides the per-attempt sleep (tests use 0).
func (c *Client) SetDelay(d time.Duration) {
	c.delay = d
}

// The rating meta tag reads like "4.12 out of 5".
var ratingRe = regexp.MustCompile(`([\d.]+)\s*out of`)

// Lookup fetches the film page for title and scrapes its rating and poster.
// When year is known the "-year" slug variant is tried first, since
// Letterboxd disambiguates remakes that way. A film that can't be found, or a
// page exposing neither rating nor poster, returns (nil, nil): an absent
// rating is not an error.
func (c *Client) Lookup(ctx context.Context, title, year string) (*Rating, error) {
	filmSlug := slug.FromTitle(title)

	candidates := []string{c.baseURL + "/film/" + filmSlug + "/"}
	if year != "" {
		candidates = append([]string{c.baseURL + "/film/" + filmSlug + "-" + year + "/"}, candidates...)
	}

	for i, pageURL := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			time.Sleep(c.delay)
		}

		html, err := c.client.GetString(ctx, pageURL)
		if err != nil {
			continue
		}

		result, ok := scrapeFilmPage(html, pageURL)
		if ok {
			return result, nil
		}
	}

	return nil, nil
}

// scrapeFilmPage pulls rating and poster out of one film page. ok=false when
// the page exposes neither.
func scrapeFilmPage(html, pageURL string) (*Rating, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	result := &Rating{URL: pageURL}

	// Rating lives in the twitter:data2 meta tag.
	if text, ok := doc.Find("meta[name='twitter:data2']").Attr("content"); ok {
		if m := ratingRe.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				result.Rating = &v
			}
		}
	}

	// Poster from og:image, but only the Letterboxd-hosted one: the tag
	// falls back to a generic share card on some pages.
	if img, ok := doc.Find("meta[property='og:image']").Attr("content"); ok {
		if img != "" && strings.Contains(img, "letterboxd") {
			result.Poster = &img
		}
	}

	// Alternative: the poster <img> in the page body.
	if result.Poster == nil {
		if src, ok := doc.Find("img.image").First().Attr("src"); ok && src != "" {
			result.Poster = &src
		}
	}

	return result, result.Rating != nil || result.Poster != nil
}
