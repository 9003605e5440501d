package moviepage

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"streamcal/pkg/platform"
)

// Info holds what a single movie detail page yields. Date and Platform are
// both required before an Info becomes a release candidate.
type Info struct {
	URL      string
	Title    string
	Date     string // ISO YYYY-MM-DD
	Platform string
	Synopsis string
}

var (
	// "SVOD Release Date: January 9, 2026 (Netflix)"
	svodRe = regexp.MustCompile(`SVOD Release Date:\s*(\w+ \d+, \d+)\s*\(([^)]+)\)`)

	// "VOD Release Date: December 9, 2025"
	vodRe = regexp.MustCompile(`VOD Release Date:\s*(\w+ \d+, \d+)`)

	trailingYearRe = regexp.MustCompile(`-\d{4}$`)
)

const pageDateLayout = "January 2, 2006"

var titleCaser = cases.Title(language.English)

// Parse scans the flattened page lines for release info. The first dated line
// wins: an SVOD date carries its platform inline, a bare VOD date gets the
// generic placeholder, which a Distributor line further down may upgrade to
// the actual service.
func Parse(pageURL string, lines []string) Info {
	info := Info{URL: pageURL, Title: TitleFromURL(pageURL)}
	distributor := ""

	for _, line := range lines {
		if info.Date == "" && strings.Contains(line, "SVOD Release Date:") {
			if m := svodRe.FindStringSubmatch(line); m != nil {
				if t, err := time.Parse(pageDateLayout, m[1]); err == nil {
					info.Date = t.Format("2006-01-02")
					info.Platform = m[2]
				}
			}
		}

		if info.Date == "" && strings.Contains(line, "VOD Release Date:") {
			if m := vodRe.FindStringSubmatch(line); m != nil {
				if t, err := time.Parse(pageDateLayout, m[1]); err == nil {
					info.Date = t.Format("2006-01-02")
					info.Platform = platform.VODDigital
				}
			}
		}

		if strings.Contains(line, "Distributor") {
			if d := distributorHint(line); d != "" {
				distributor = d
			}
		}

		if strings.Contains(line, "Synopsis:") {
			info.Synopsis = strings.TrimSpace(strings.ReplaceAll(line, "Synopsis:", ""))
		}
	}

	// A named distributor is more useful than the generic placeholder.
	if info.Platform == platform.VODDigital && distributor != "" {
		info.Platform = distributor
	}

	return info
}

// distributorHint maps a "Distributor: ..." line to a platform label.
func distributorHint(line string) string {
	switch {
	case strings.Contains(line, "MUBI"):
		return "MUBI"
	case strings.Contains(line, "Netflix"):
		return "Netflix"
	case strings.Contains(line, "Hulu"):
		return "Hulu"
	case strings.Contains(line, "Amazon"), strings.Contains(line, "Prime"):
		return "Prime Video"
	case strings.Contains(line, "HBO"), strings.Contains(line, "Max"):
		return "HBO Max"
	}
	return ""
}

// TitleFromURL derives a display title from the movie page's URL slug:
// "/the-lost-bus-2025/" becomes "The Lost Bus". Returns "" when the URL has
// no usable path segment.
func TitleFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	seg := strings.Trim(parsed.Path, "/")
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return ""
	}

	seg = trailingYearRe.ReplaceAllString(seg, "")
	return titleCaser.String(strings.ReplaceAll(seg, "-", " "))
}
