package calendar

import (
	"regexp"
	"strings"
	"time"
)

// Date headers look like "Monday, December 1st, 2025". The weekday prefix is
// what separates them from ordinary text lines; the full parse then decides
// whether the rest is a real calendar date.
var (
	headerStartRe = regexp.MustCompile(`^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s+\w+\s+\d+`)
	weekdayRe     = regexp.MustCompile(`^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),`)
	ordinalRe     = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
)

const headerLayout = "Monday, January 2, 2006"

// ParseHeader reports whether line is a date-header line and, if so, returns
// the date in ISO form. Lines that look like a header but do not parse to a
// valid calendar date (bad month name, February 30th, ...) return ok=false;
// the caller keeps whatever date context it already had.
func ParseHeader(line string) (string, bool) {
	if !headerStartRe.MatchString(line) {
		return "", false
	}
	clean := ordinalRe.ReplaceAllString(line, "$1")
	t, err := time.Parse(headerLayout, strings.TrimSpace(clean))
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// StartsHeader reports whether line merely begins like a date header
// ("Tuesday," ...). The synopsis lookahead stops on these even when the full
// date would not parse.
func StartsHeader(line string) bool {
	return weekdayRe.MatchString(line)
}
