package core

// convert.go provides cleanup and conversion helpers for user-provided text.
//
// These functions handle the messy reality of uploaded CSV files and form input:
//   - Excel formula prefixes (="value")
//   - Stray quotes around headers
//   - Several calendar date spellings (ISO, US, EU)

import (
	"fmt"
	"strings"
	"time"
)

// dayLayouts are the accepted spellings of a calendar day, ISO first.
var dayLayouts = []string{
	DateLayout, "2006/01/02", "2006.01.02",
	"1/2/2006", "01/02/2006", "02.01.2006", "2.1.2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

// HeaderIndex maps cleaned, lowercased column names to their position in a CSV row.
type HeaderIndex map[string]int

// CleanCell trims whitespace and strips Excel formula wrappers from a cell.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	// Remove leading '='
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(s)
}

// CleanHeader normalizes a header cell for lookup.
// Surrounding quotes are removed in addition to CleanCell's cleanup.
func CleanHeader(s string) string {
	s = CleanCell(s)
	s = strings.Trim(s, `"'`)
	return strings.ToLower(strings.TrimSpace(s))
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// This should be called once per file, then reused for all rows.
// When a header repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := CleanHeader(h)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// Lookup returns the trimmed value of column name in row.
// Missing columns and short rows yield an empty string.
func (h HeaderIndex) Lookup(row []string, name string) string {
	pos, ok := h[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// ParseDay parses a calendar day in any accepted layout.
// The result is midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date: empty value")
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar day in t's own location, returned as midnight UTC.
// Two times on the same calendar day always produce equal Days.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
