package slug

import "testing"

func TestFromTitle(t *testing.T) {
	cases := map[string]string{
		"The Movie: Part Two! (2025)": "the-movie-part-two",
		"Don't Look Up":               "dont-look-up",
		"Spider-Man":                  "spider-man",
		"Birds — Of Prey":             "birds-of-prey",
		"What?!":                      "what",
		"  Padded Title  ":            "padded-title",
		"28 Years Later (2025)":       "28-years-later",
	}

	for title, want := range cases {
		if got := FromTitle(title); got != want {
			t.Errorf("FromTitle(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestFromTitleKeepsMidTitleYears(t *testing.T) {
	// Only a trailing parenthesized year is a disambiguation suffix.
	if got := FromTitle("Blade Runner 2049"); got != "blade-runner-2049" {
		t.Errorf("FromTitle = %q", got)
	}
}
