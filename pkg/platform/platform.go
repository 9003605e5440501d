package platform

import "strings"

// Labels with special meaning to the reconciler.
const (
	// Unknown is the sentinel returned when no detector matches.
	Unknown = "Unknown"

	// VODDigital is the generic placeholder platform. A release tagged with
	// it has a digital date but no confirmed service yet.
	VODDigital = "VOD/Digital"
)

// detector pairs a platform label with its line test. The test receives the
// line already lowercased.
type detector struct {
	label string
	match func(lower string) bool
}

func marker(tokens ...string) func(string) bool {
	return func(lower string) bool {
		for _, t := range tokens {
			if strings.Contains(lower, t) {
				return true
			}
		}
		return false
	}
}

// detectors in priority order: first match wins. Later entries may be broader
// than earlier ones, so declaration order matters — in particular the bare
// "max)" suffix fallback must not shadow the explicit service markers above
// it. The suffix form catches the "(Max)" rebrand marker; anchoring it to the
// end of the line keeps it from firing on mid-line fragments.
var detectors = []detector{
	{"Netflix", marker("(netflix)")},
	{"Prime Video", marker("(prime video)")},
	{"HBO Max", func(lower string) bool {
		return strings.Contains(lower, "(hbo max)") || strings.HasSuffix(lower, "max)")
	}},
	{"Hulu", marker("(hulu)")},
	{"Disney+", marker("(disney+)")},
	{"Paramount+", marker("(paramount+)")},
	{"Apple TV", marker("(apple tv)")},
	{"Peacock", marker("(peacock)")},
	{"Shudder", marker("(shudder)")},
	{"Starz", marker("(starz)")},
	{"MUBI", marker("(mubi)")},
	{VODDigital, marker("(vod/digital)", "(pvod)")},
	{"MGM+", marker("(mgm+)")},
	{"Criterion", marker("(criterion)")},
	{"Tubi", marker("(tubi)")},
}

// Detect classifies a line against the ordered detector table and returns
// the first matching platform label, or Unknown.
func Detect(line string) string {
	lower := strings.ToLower(line)
	for _, d := range detectors {
		if d.match(lower) {
			return d.label
		}
	}
	return Unknown
}

// IsSpecific reports whether label names a concrete service, as opposed to
// the generic VOD placeholder or the Unknown sentinel.
func IsSpecific(label string) bool {
	return label != Unknown && label != VODDigital
}
