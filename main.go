package main

import (
	"context"
	"flag"
	"log"
	"time"

	"streamcal/pkg/calendar"
	"streamcal/pkg/dataset"
	"streamcal/pkg/db"
	"streamcal/pkg/domain"
	"streamcal/pkg/enrich"
	"streamcal/pkg/letterboxd"
	"streamcal/pkg/reconcile"
	"streamcal/pkg/scraper"
	"streamcal/pkg/tmdb"
)

func main() {
	var (
		baseURL = flag.String("base-url", scraper.DefaultBaseURL, "Streaming calendar site to scrape")
		tmdbKey = flag.String("tmdb-key", "", "TMDB API key for posters and theatrical releases")
		out     = flag.String("out", "data/releases.json", "Output path for the dataset JSON")
		months  = flag.Int("months", 2, "Number of months to scrape, starting with the current one")
		workers = flag.Int("workers", 4, "Number of parallel enrichment workers")

		mongoURI   = flag.String("mongo-uri", "", "Optional MongoDB connection string to archive releases")
		dbName     = flag.String("db", "streamcal", "MongoDB database name")
		collection = flag.String("collection", "releases", "MongoDB collection name")
	)
	flag.Parse()

	ctx := context.Background()
	windows := calendar.Upcoming(time.Now(), *months)

	// Streaming: one candidate list per month, merged by the reconciler.
	svc := scraper.New(*baseURL)
	var passes [][]domain.Release
	for _, w := range windows {
		releases, err := svc.ScrapeMonth(ctx, w)
		if err != nil {
			log.Printf("Scrape of %s %d failed: %v", w.Month, w.Year, err)
		}
		log.Printf("Found %d streaming releases for %s %d", len(releases), w.DisplayName(), w.Year)
		passes = append(passes, releases)
	}
	releases := reconcile.Streaming(passes...)

	tmdbClient := tmdb.NewClient(*tmdbKey, tmdb.DefaultBaseURL)
	manager := enrich.NewManager(*workers, letterboxd.NewClient(letterboxd.DefaultBaseURL), tmdbClient)

	log.Printf("Fetching Letterboxd ratings and TMDB posters...")
	manager.Releases(ctx, releases)

	// Theatrical: the TMDB discover feed, one pass per month.
	log.Printf("Fetching theatrical releases from TMDB...")
	var theatricalPasses [][]domain.Release
	for _, w := range windows {
		monthReleases, err := tmdbClient.TheatricalReleases(ctx, w.FirstDay(), w.LastDay())
		if err != nil {
			log.Printf("Theatrical fetch for %s %d failed: %v", w.DisplayName(), w.Year, err)
			continue
		}
		log.Printf("Found %d theatrical releases for %s %d", len(monthReleases), w.DisplayName(), w.Year)
		theatricalPasses = append(theatricalPasses, monthReleases)
	}
	theatrical := reconcile.Theatrical(theatricalPasses...)

	log.Printf("Fetching Letterboxd ratings for theatrical releases...")
	manager.Theatrical(ctx, theatrical)

	ds := dataset.Build(windows, releases, theatrical)
	if err := dataset.Write(*out, ds); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("Saved %d streaming and %d theatrical releases to %s", len(releases), len(theatrical), *out)

	if *mongoURI == "" {
		return
	}

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	if err := dbClient.SaveReleases(ctx, releases); err != nil {
		log.Fatalf("Failed to archive releases: %v", err)
	}
	if err := dbClient.SaveReleases(ctx, theatrical); err != nil {
		log.Fatalf("Failed to archive theatrical releases: %v", err)
	}
	log.Printf("Archived %d releases to MongoDB", len(releases)+len(theatrical))
}
