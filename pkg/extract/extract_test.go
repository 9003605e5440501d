package extract

import (
	"strings"
	"testing"

	"streamcal/pkg/calendar"
)

func TestReleases(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"Some Film (Netflix)",
		"Synopsis: A story.",
		"Another Film (Hulu)",
	}

	releases := Releases(lines)
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}

	first := releases[0]
	if first.Title != "Some Film" || first.Date != "2025-12-01" || first.Platform != "Netflix" {
		t.Errorf("first release = %+v", first)
	}
	if first.Synopsis != "A story." {
		t.Errorf("first synopsis = %q", first.Synopsis)
	}
	if first.Kind != "streaming" {
		t.Errorf("first kind = %q", first.Kind)
	}

	second := releases[1]
	if second.Title != "Another Film" || second.Date != "2025-12-01" || second.Platform != "Hulu" {
		t.Errorf("second release = %+v", second)
	}
	if second.Synopsis != "" {
		t.Errorf("second synopsis = %q, want empty", second.Synopsis)
	}
}

func TestReleasesWithoutDateContextEmitNothing(t *testing.T) {
	lines := []string{
		"Some Film (Netflix)",
		"Synopsis: A story.",
	}
	if releases := Releases(lines); len(releases) != 0 {
		t.Fatalf("expected no releases before the first date header, got %d", len(releases))
	}
}

func TestReleasesInvalidHeaderKeepsPriorDate(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"Monday, February 30th, 2026", // looks like a header, isn't a date
		"Some Film (Netflix)",
	}

	releases := Releases(lines)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Date != "2025-12-01" {
		t.Errorf("date = %q, want the prior header's date", releases[0].Date)
	}
}

func TestReleasesRejectsBadTitles(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"Synopsis (Netflix)", // reserved token
		"CAST (Hulu)",        // reserved token, case-insensitive
		"A (Netflix)",        // too short
		"OK (Netflix)",       // two characters is enough
	}

	releases := Releases(lines)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Title != "Ok" {
		t.Errorf("title = %q", releases[0].Title)
	}
}

func TestReleasesStripsBrackets(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"[Some Film] (Netflix)",
	}

	releases := Releases(lines)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Title != "Some Film" {
		t.Errorf("title = %q, want brackets stripped", releases[0].Title)
	}
}

func TestReleasesTitleCasesUppercaseTitles(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"THE LOUD ONE (Hulu)",
		"iPhone Murders (Netflix)", // mixed case stays as-is
	}

	releases := Releases(lines)
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}
	if releases[0].Title != "The Loud One" {
		t.Errorf("uppercase title = %q", releases[0].Title)
	}
	if releases[1].Title != "iPhone Murders" {
		t.Errorf("mixed-case title = %q", releases[1].Title)
	}
}

func TestSynopsisLookaheadStopsAtNextHeader(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"Some Film (Netflix)",
		"Tuesday, December 2, 2025",
		"Synopsis: Belongs to another day.",
		"Other Film (Hulu)",
	}

	releases := Releases(lines)
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}
	if releases[0].Synopsis != "" {
		t.Errorf("synopsis = %q, want empty: the header ends the lookahead", releases[0].Synopsis)
	}
	if releases[1].Date != "2025-12-02" {
		t.Errorf("second release date = %q", releases[1].Date)
	}
}

func TestSynopsisLookaheadIsBounded(t *testing.T) {
	lines := []string{
		"Monday, December 1, 2025",
		"Some Film (Netflix)",
		"filler",
		"filler",
		"filler",
		"filler",
		"Synopsis: Too far away.",
	}

	releases := Releases(lines)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Synopsis != "" {
		t.Errorf("synopsis = %q, want empty: five lines past the match", releases[0].Synopsis)
	}
}

func TestSynopsisIsClipped(t *testing.T) {
	long := strings.Repeat("a", 450)
	lines := []string{
		"Monday, December 1, 2025",
		"Some Film (Netflix)",
		"Synopsis: " + long,
	}

	releases := Releases(lines)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	want := strings.Repeat("a", 400) + "..."
	if releases[0].Synopsis != want {
		t.Errorf("synopsis length = %d, want clipped to %d", len(releases[0].Synopsis), len(want))
	}
}

func TestReleasesInWindow(t *testing.T) {
	lines := []string{
		"Sunday, November 30, 2025",
		"Early Film (Netflix)",
		"Monday, December 1, 2025",
		"On Time (Hulu)",
	}

	w := calendar.MonthWindow{Month: "december", Year: 2025}
	releases := ReleasesInWindow(lines, w)
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Title != "On Time" {
		t.Errorf("title = %q", releases[0].Title)
	}
}
