package enrich

import (
	"context"
	"log"
	"sync"

	"streamcal/pkg/domain"
	"streamcal/pkg/letterboxd"
)

// RatingSource looks up a community rating for a title. A nil result with a
// nil error means the title wasn't found — not a failure.
type RatingSource interface {
	Lookup(ctx context.Context, title, year string) (*letterboxd.Rating, error)
}

// PosterSource looks up a poster image URL for a title. "" means no poster.
type PosterSource interface {
	PosterURL(ctx context.Context, title, year string) (string, error)
}

// Manager fans release enrichment out over a worker pool. Lookups are
// independent per release, so workers share nothing but the job channel.
type Manager struct {
	workerCount int
	ratings     RatingSource
	posters     PosterSource
}

// NewManager creates a new enrichment manager
func NewManager(workerCount int, ratings RatingSource, posters PosterSource) *Manager {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Manager{
		workerCount: workerCount,
		ratings:     ratings,
		posters:     posters,
	}
}

// Releases attaches Letterboxd ratings and TMDB posters to every release in
// place. Lookup failures leave the fields absent; they never fail the run.
func (m *Manager) Releases(ctx context.Context, releases []domain.Release) {
	m.run(ctx, releases, true)
}

// Theatrical attaches Letterboxd ratings only: theatrical entries already
// carry their TMDB poster from the discover feed.
func (m *Manager) Theatrical(ctx context.Context, releases []domain.Release) {
	m.run(ctx, releases, false)
}

func (m *Manager) run(ctx context.Context, releases []domain.Release, withPosters bool) {
	// Workers receive slice indexes and write to disjoint elements, so the
	// releases slice itself needs no locking.
	jobChan := make(chan int, len(releases))
	for i := range releases {
		jobChan <- i
	}
	close(jobChan)

	var wg sync.WaitGroup

	type result struct {
		title    string
		rated    bool
		postered bool
	}
	resultsChan := make(chan result, len(releases))

	for i := 0; i < m.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if ctx.Err() != nil {
					return
				}
				r := &releases[idx]
				m.enrichOne(ctx, r, withPosters)
				resultsChan <- result{
					title:    r.Title,
					rated:    r.LetterboxdRating != nil,
					postered: r.Poster != nil,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	done := 0
	for res := range resultsChan {
		done++
		log.Printf("%s: rating=%v poster=%v", res.title, res.rated, res.postered)
		if done%10 == 0 {
			log.Printf("[%d/%d complete]", done, len(releases))
		}
	}
}

// enrichOne fills the enrichment fields of a single release.
func (m *Manager) enrichOne(ctx context.Context, r *domain.Release, withPosters bool) {
	year := r.Year()

	rating, err := m.ratings.Lookup(ctx, r.Title, year)
	if err != nil {
		log.Printf("Rating lookup for %s failed: %v", r.Title, err)
	} else if rating != nil {
		r.LetterboxdRating = rating.Rating
		url := rating.URL
		r.LetterboxdURL = &url
	}

	if !withPosters {
		return
	}

	poster, err := m.posters.PosterURL(ctx, r.Title, year)
	if err != nil {
		log.Printf("Poster lookup for %s failed: %v", r.Title, err)
		return
	}
	if poster != "" {
		r.Poster = &poster
	}
}
