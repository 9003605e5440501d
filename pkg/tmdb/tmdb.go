package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streamcal/pkg/domain"
	"streamcal/pkg/httpclient"
)

// DefaultBaseURL is the TMDB REST API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// ImageBase is the poster CDN prefix at the width the site renders.
const ImageBase = "https://image.tmdb.org/t/p/w154"

const (
	// Three pages of the popularity-sorted discover feed covers every
	// notable theatrical release in a month.
	maxDiscoverPages = 3

	// Old classics getting a re-release show up in the discover window with
	// huge vote counts; new releases don't.
	reReleaseVoteCount = 1000

	// Popularity above this before release means a wide release.
	wideReleasePopularity = 8

	pageDelay = 250 * time.Millisecond
)

// Client talks to the TMDB REST API.
type Client struct {
	client  *httpclient.HTTPClient
	baseURL string
	apiKey  string
}

// NewClient creates a TMDB client. Tests pass a mock server as baseURL,
// everything else passes DefaultBaseURL.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		client:  httpclient.NewClient(httpclient.ScraperClient, 10*time.Second),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	VoteCount   int     `json:"vote_count"`
}

type movieListResponse struct {
	Results    []movieResult `json:"results"`
	TotalPages int           `json:"total_pages"`
}

// PosterURL searches for title and returns the poster URL of the first hit,
// or "" when nothing matches or the hit has no poster.
func (c *Client) PosterURL(ctx context.Context, title, year string) (string, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)
	if year != "" {
		params.Set("year", year)
	}

	var resp movieListResponse
	if err := c.getJSON(ctx, "/search/movie?"+params.Encode(), &resp); err != nil {
		return "", err
	}

	if len(resp.Results) == 0 || resp.Results[0].PosterPath == "" {
		return "", nil
	}
	return ImageBase + resp.Results[0].PosterPath, nil
}

// TheatricalReleases pulls US theatrical and limited releases dated inside
// [startDate, endDate], most popular first. Stale entries (release year older
// than the window's) and likely re-releases are skipped.
func (c *Client) TheatricalReleases(ctx context.Context, startDate, endDate string) ([]domain.Release, error) {
	targetYear := 0
	if len(startDate) >= 4 {
		targetYear, _ = strconv.Atoi(startDate[:4])
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("region", "US")
	params.Set("with_release_type", "2|3") // 2=Limited, 3=Theatrical
	params.Set("release_date.gte", startDate)
	params.Set("release_date.lte", endDate)
	params.Set("sort_by", "popularity.desc")

	var releases []domain.Release
	for page := 1; page <= maxDiscoverPages; page++ {
		params.Set("page", strconv.Itoa(page))

		var resp movieListResponse
		if err := c.getJSON(ctx, "/discover/movie?"+params.Encode(), &resp); err != nil {
			if len(releases) > 0 {
				log.Printf("Error fetching TMDB page %d: %v", page, err)
				break
			}
			return nil, err
		}

		for _, movie := range resp.Results {
			r, ok := theatricalRelease(movie, targetYear)
			if ok {
				releases = append(releases, r)
			}
		}

		if page >= resp.TotalPages {
			break
		}
		time.Sleep(pageDelay)
	}

	return releases, nil
}

// theatricalRelease converts one discover result, applying the skip rules.
func theatricalRelease(movie movieResult, targetYear int) (domain.Release, bool) {
	if len(movie.ReleaseDate) < 4 {
		return domain.Release{}, false
	}

	movieYear, _ := strconv.Atoi(movie.ReleaseDate[:4])
	if movieYear < targetYear {
		log.Printf("Skipping old movie: %s (%d)", movie.Title, movieYear)
		return domain.Release{}, false
	}
	if movie.VoteCount > reReleaseVoteCount {
		log.Printf("Skipping likely re-release: %s (votes: %d)", movie.Title, movie.VoteCount)
		return domain.Release{}, false
	}

	releaseType := "Limited"
	if movie.Popularity > wideReleasePopularity {
		releaseType = "Wide Release"
	}

	r := domain.Release{
		Title:    movie.Title,
		Date:     movie.ReleaseDate,
		Platform: releaseType,
		Synopsis: movie.Overview,
		Kind:     domain.KindTheatrical,
		TMDBID:   movie.ID,
	}
	if movie.PosterPath != "" {
		poster := ImageBase + movie.PosterPath
		r.Poster = &poster
	}
	return r, true
}

// getJSON fetches path under the API root and decodes the response body.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.client.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("failed to fetch TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}
