package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"streamcal/pkg/calendar"
	"streamcal/pkg/reconcile"
)

func newCalendarSite(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/when-to-streams-december-2025-preview/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<h2>Monday, December 1, 2025</h2>
<p>Some Film (Netflix)</p>
<p>Synopsis: A story.</p>
<p>Another Film (Hulu)</p>
</body></html>`)
	})

	mux.HandleFunc("/streaming-december-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
<a href="%[1]s/some-film-2025/">Some Film</a>
<a href="%[1]s/out-of-window-2025/">Out Of Window</a>
<a href="%[1]s/streaming-november-2025/">November</a>
</body></html>`, server.URL)
	})

	mux.HandleFunc("/some-film-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<p>SVOD Release Date: December 5, 2025 (Hulu)</p>
<p>Synopsis: A longer story.</p>
</body></html>`)
	})

	mux.HandleFunc("/out-of-window-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<p>VOD Release Date: February 3, 2026</p>
</body></html>`)
	})

	server = httptest.NewServer(mux)
	return server
}

func TestScrapeMonth(t *testing.T) {
	server := newCalendarSite(t)
	defer server.Close()

	svc := New(server.URL)
	svc.SetDelay(0)

	w := calendar.MonthWindow{Month: "december", Year: 2025}
	candidates, err := svc.ScrapeMonth(context.Background(), w)
	if err != nil {
		t.Fatalf("ScrapeMonth failed: %v", err)
	}

	// Preview pass: Some Film + Another Film. Calendar pass: Some Film again
	// (the out-of-window page is fetched but filtered).
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %+v", len(candidates), candidates)
	}

	merged := reconcile.Streaming(candidates)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged releases, got %d: %+v", len(merged), merged)
	}

	// Both passes saw Some Film with specific platforms; the calendar pass
	// carries the later, confirmed date.
	if merged[0].Title != "Another Film" || merged[0].Date != "2025-12-01" {
		t.Errorf("first = %+v", merged[0])
	}
	if merged[1].Title != "Some Film" || merged[1].Platform != "Hulu" || merged[1].Date != "2025-12-05" {
		t.Errorf("second = %+v", merged[1])
	}
	if merged[1].Synopsis != "A longer story." {
		t.Errorf("synopsis = %q", merged[1].Synopsis)
	}
}

func TestScrapeMonthFallsBackToCalendarPass(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()

	// No preview handler: the preview URL 404s.
	mux.HandleFunc("/streaming-december-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/some-film-2025/">Some Film</a>`, server.URL)
	})
	mux.HandleFunc("/some-film-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>SVOD Release Date: December 5, 2025 (Netflix)</p>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	svc := New(server.URL)
	svc.SetDelay(0)

	releases, err := svc.ScrapeMonth(context.Background(), calendar.MonthWindow{Month: "december", Year: 2025})
	if err != nil {
		t.Fatalf("ScrapeMonth failed: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Title != "Some Film" || releases[0].Platform != "Netflix" {
		t.Errorf("release = %+v", releases[0])
	}
}

func TestScrapeMonthIgnoresPreviewWithoutMovieData(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()

	// The site serves its homepage for unknown preview URLs; no "Synopsis:"
	// marker means no movie data.
	mux.HandleFunc("/when-to-streams-december-2025-preview/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Welcome to the homepage</p></body></html>`)
	})
	mux.HandleFunc("/streaming-december-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/some-film-2025/">Some Film</a>`, server.URL)
	})
	mux.HandleFunc("/some-film-2025/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>VOD Release Date: December 9, 2025</p>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	svc := New(server.URL)
	svc.SetDelay(0)

	releases, err := svc.ScrapeMonth(context.Background(), calendar.MonthWindow{Month: "december", Year: 2025})
	if err != nil {
		t.Fatalf("ScrapeMonth failed: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d: %+v", len(releases), releases)
	}
	if releases[0].Platform != "VOD/Digital" {
		t.Errorf("platform = %q", releases[0].Platform)
	}
}

func TestCalendarPassSkipsAlreadyCapturedLinks(t *testing.T) {
	var server *httptest.Server
	movieFetches := 0
	mux := http.NewServeMux()

	// November and December both link the same late-November movie.
	calendarPage := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/some-film-2025/">Some Film</a>`, server.URL)
	}
	mux.HandleFunc("/streaming-november-2025/", calendarPage)
	mux.HandleFunc("/streaming-december-2025/", calendarPage)
	mux.HandleFunc("/some-film-2025/", func(w http.ResponseWriter, r *http.Request) {
		movieFetches++
		fmt.Fprint(w, `<p>SVOD Release Date: November 28, 2025 (Netflix)</p>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	svc := New(server.URL)
	svc.SetDelay(0)

	november, err := svc.ScrapeCalendar(context.Background(), calendar.MonthWindow{Month: "november", Year: 2025})
	if err != nil {
		t.Fatalf("november pass failed: %v", err)
	}
	december, err := svc.ScrapeCalendar(context.Background(), calendar.MonthWindow{Month: "december", Year: 2025})
	if err != nil {
		t.Fatalf("december pass failed: %v", err)
	}

	if len(november) != 1 || november[0].Title != "Some Film" {
		t.Fatalf("november releases = %+v", november)
	}
	if len(december) != 0 {
		t.Errorf("december releases = %+v", december)
	}
	if movieFetches != 1 {
		t.Errorf("movie page fetched %d times, want 1", movieFetches)
	}
}

func TestURLBuilders(t *testing.T) {
	svc := New("https://whentostream.com")
	w := calendar.MonthWindow{Month: "december", Year: 2025}

	if got := svc.PreviewURL(w); got != "https://whentostream.com/when-to-streams-december-2025-preview/" {
		t.Errorf("PreviewURL = %q", got)
	}
	if got := svc.CalendarURL(w); got != "https://whentostream.com/streaming-december-2025/" {
		t.Errorf("CalendarURL = %q", got)
	}
}
