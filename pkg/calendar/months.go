package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Months in calendar order, lowercased the way the calendar site spells them
// in its URLs.
var Months = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// MonthNumber returns the one-based number for a month name (any case).
func MonthNumber(name string) (int, bool) {
	lower := strings.ToLower(name)
	for i, m := range Months {
		if m == lower {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthWindow bounds a scrape to one (month, year). Sources that expose a
// broader range are filtered down to the window by the caller.
type MonthWindow struct {
	Month string // lowercase month name, e.g. "december"
	Year  int
}

// Current returns the window containing now.
func Current(now time.Time) MonthWindow {
	return MonthWindow{Month: Months[now.Month()-1], Year: now.Year()}
}

// Upcoming returns n consecutive windows starting with the one containing
// now. The scraper runs with n=2: current month plus next.
func Upcoming(now time.Time, n int) []MonthWindow {
	windows := make([]MonthWindow, 0, n)
	w := Current(now)
	for i := 0; i < n; i++ {
		windows = append(windows, w)
		w = w.Next()
	}
	return windows
}

// Number returns the one-based month number, or 0 for an unknown name.
func (w MonthWindow) Number() int {
	n, _ := MonthNumber(w.Month)
	return n
}

// Next returns the window immediately after w, rolling over the year.
func (w MonthWindow) Next() MonthWindow {
	n := w.Number()
	if n == 12 {
		return MonthWindow{Month: Months[0], Year: w.Year + 1}
	}
	return MonthWindow{Month: Months[n], Year: w.Year}
}

// Prefix returns the ISO year-month prefix, e.g. "2025-12".
func (w MonthWindow) Prefix() string {
	return fmt.Sprintf("%d-%02d", w.Year, w.Number())
}

// Contains reports whether the ISO date falls inside the window.
func (w MonthWindow) Contains(isoDate string) bool {
	return strings.HasPrefix(isoDate, w.Prefix()+"-")
}

// FirstDay returns the first day of the window as an ISO date.
func (w MonthWindow) FirstDay() string {
	return fmt.Sprintf("%d-%02d-01", w.Year, w.Number())
}

// LastDay returns the last day of the window as an ISO date.
func (w MonthWindow) LastDay() string {
	// Day 0 of the following month.
	t := time.Date(w.Year, time.Month(w.Number())+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Format("2006-01-02")
}

// DisplayName returns the capitalized month name for the dataset header.
func (w MonthWindow) DisplayName() string {
	if w.Month == "" {
		return ""
	}
	return strings.ToUpper(w.Month[:1]) + w.Month[1:]
}
