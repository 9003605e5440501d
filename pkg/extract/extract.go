package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"streamcal/pkg/calendar"
	"streamcal/pkg/domain"
	"streamcal/pkg/platform"
)

const (
	// How many lines past a release line to scan for its "Synopsis:" line.
	synopsisLookahead = 4

	// Synopses longer than this are cut with an ellipsis marker to keep the
	// dataset predictable.
	maxSynopsisRunes = 400

	synopsisPrefix = "Synopsis:"
)

// Structural tokens that sometimes survive the HTML flattening as bare lines
// in front of a stray parenthetical; never valid titles.
var reservedTitles = map[string]bool{
	"synopsis": true,
	"cast":     true,
}

// A release line is "Some Title (Platform)": text followed by one trailing
// parenthesized group.
var releaseLineRe = regexp.MustCompile(`^(.+?)\s*\([^)]+\)\s*$`)

var titleCaser = cases.Title(language.English)

// Releases scans the flattened page lines and emits one streaming release per
// platform-bearing line.
//
// The scan folds a single piece of state over the lines: the current date
// context, set by each date-header line and shared by every release line
// until the next header. Lines seen before the first header cannot emit.
// Each emitted release is a complete snapshot; nothing is revised
// retroactively.
func Releases(lines []string) []domain.Release {
	var releases []domain.Release
	currentDate := ""

	for i, line := range lines {
		if date, ok := calendar.ParseHeader(line); ok {
			currentDate = date
			continue
		}

		label := platform.Detect(line)
		if label == platform.Unknown || currentDate == "" {
			continue
		}

		m := releaseLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[1])
		title = strings.TrimPrefix(title, "[")
		title = strings.TrimSuffix(title, "]")

		if utf8.RuneCountInString(title) < 2 || reservedTitles[strings.ToLower(title)] {
			continue
		}

		releases = append(releases, domain.Release{
			Title:    NormalizeTitle(title),
			Date:     currentDate,
			Platform: label,
			Synopsis: findSynopsis(lines, i),
			Kind:     domain.KindStreaming,
		})
	}

	return releases
}

// ReleasesInWindow is the filtering variant of Releases: matches dated
// outside the window are dropped, not errors. Some sources list the tail of
// the previous month or the head of the next.
func ReleasesInWindow(lines []string, w calendar.MonthWindow) []domain.Release {
	var releases []domain.Release
	for _, r := range Releases(lines) {
		if w.Contains(r.Date) {
			releases = append(releases, r)
		}
	}
	return releases
}

// NormalizeTitle converts an all-uppercase title to title case and leaves
// mixed-case titles untouched.
func NormalizeTitle(title string) string {
	if isAllUpper(title) {
		return titleCaser.String(title)
	}
	return title
}

// isAllUpper reports whether s has at least one letter and no lowercase ones.
func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// findSynopsis scans up to synopsisLookahead lines past index i for a
// "Synopsis:" line. The scan stops early, empty-handed, at the next
// date-header line: whatever synopsis follows belongs to another day.
func findSynopsis(lines []string, i int) string {
	for j := i + 1; j < len(lines) && j <= i+synopsisLookahead; j++ {
		if rest, ok := strings.CutPrefix(lines[j], synopsisPrefix); ok {
			return clipSynopsis(strings.TrimSpace(rest))
		}
		if calendar.StartsHeader(lines[j]) {
			break
		}
	}
	return ""
}

func clipSynopsis(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSynopsisRunes {
		return s
	}
	return string(runes[:maxSynopsisRunes]) + "..."
}
