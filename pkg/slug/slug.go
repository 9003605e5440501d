package slug

import (
	"regexp"
	"strings"
)

var (
	yearSuffixRe = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)
	punctRe      = regexp.MustCompile(`[:'"!?,.]`)
	dashRe       = regexp.MustCompile(`[–—]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// FromTitle converts a movie title into the URL slug Letterboxd uses for its
// film pages: drop a trailing "(YYYY)" suffix, lowercase, strip punctuation,
// normalize en/em dashes, and collapse whitespace and hyphen runs.
func FromTitle(title string) string {
	s := yearSuffixRe.ReplaceAllString(title, "")
	s = strings.ToLower(s)
	s = punctRe.ReplaceAllString(s, "")
	s = dashRe.ReplaceAllString(s, "-")
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
