package platform

import "testing"

func TestDetect(t *testing.T) {
	cases := map[string]string{
		"Some Film (Netflix)":           "Netflix",
		"Some Film (PRIME VIDEO)":       "Prime Video",
		"Some Film (HBO Max)":           "HBO Max",
		"Some Film (Max)":               "HBO Max", // rebrand marker via the suffix fallback
		"Some Film (Hulu)":              "Hulu",
		"Some Film (Disney+)":           "Disney+",
		"Some Film (Paramount+)":        "Paramount+",
		"Some Film (Apple TV)":          "Apple TV",
		"Some Film (Peacock)":           "Peacock",
		"Some Film (Shudder)":           "Shudder",
		"Some Film (Starz)":             "Starz",
		"Some Film (MUBI)":              "MUBI",
		"Some Film (VOD/Digital)":       VODDigital,
		"Some Film (PVOD)":              VODDigital,
		"Some Film (MGM+)":              "MGM+",
		"Some Film (Criterion)":         "Criterion",
		"Some Film (Tubi)":              "Tubi",
		"Monday, December 1, 2025":      Unknown,
		"Some Film (Quibi)":             Unknown,
	}

	for line, want := range cases {
		if got := Detect(line); got != want {
			t.Errorf("Detect(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestDetectPriorityIsDeclarationOrder(t *testing.T) {
	// Matches both the Netflix marker and the trailing-Max fallback; Netflix
	// is declared first.
	if got := Detect("Some Film (Netflix) (Max)"); got != "Netflix" {
		t.Errorf("Detect = %q, want Netflix", got)
	}
}

func TestDetectMaxFallbackIsAnchored(t *testing.T) {
	// The suffix fallback must not fire on a mid-line "Max)" fragment.
	if got := Detect("Shown in (IMAX) theaters everywhere (Tubi)"); got != "Tubi" {
		t.Errorf("Detect = %q, want Tubi", got)
	}
}

func TestIsSpecific(t *testing.T) {
	if IsSpecific(Unknown) || IsSpecific(VODDigital) {
		t.Error("sentinel and placeholder are not specific platforms")
	}
	if !IsSpecific("Netflix") {
		t.Error("Netflix is a specific platform")
	}
}
