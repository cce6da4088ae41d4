// =============================================================================
// Ordemtex - Field Normalizer
// =============================================================================
//
// This module converts raw cell values, as read from the tabular source,
// into typed scalars: numbers, normalized date strings and trimmed text.
//
// The source exports are messy by nature:
//   - Numbers may use either "." or "," as the decimal separator.
//   - Dates arrive as DD/MM/YYYY text, as arbitrary date text, or as the
//     spreadsheet serial day count (days since 30 Dec 1899).
//   - Text cells carry stray whitespace.
//
// Every function in this package is total: malformed input degrades to a
// neutral value (0 or the original text), never to an error. A single bad
// cell must not be able to abort an import.
//
// =============================================================================

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dmyPattern matches already-normalized D/M/YYYY or DD/MM/YYYY text.
var dmyPattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// serialEpoch is the spreadsheet date epoch: 30 Dec 1899. Serial value 1 is
// 1 Jan 1900. The epoch is shifted two days from 1 Jan 1900 to absorb the
// historical leap-year bug (the format counts a nonexistent 29 Feb 1900).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// genericLayouts are the date layouts tried for free-form date text, in
// order. The source system occasionally emits ISO dates and dashed
// day-first dates next to the usual slashed form.
var genericLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02T15:04:05",
}

// =============================================================================
// NUMBERS
// =============================================================================

// Number converts a raw cell into a numeric quantity.
//
// Empty input yields 0. Both "." and "," are accepted as the decimal
// separator. Unparseable input yields 0 rather than an error.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	// Locale-tolerant retry: treat the comma as a decimal separator.
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return v
	}

	return 0
}

// =============================================================================
// DATES
// =============================================================================

// Date normalizes a raw cell into DD/MM/YYYY text.
//
// Empty input yields "". Text already in D/M/YYYY form passes through
// unchanged. A numeric cell is interpreted as a spreadsheet serial day
// count and converted. Any other text is run through the generic layouts;
// when none match, the original text is returned unchanged so that no data
// is dropped.
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if dmyPattern.MatchString(s) {
		return s
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if d, ok := fromSerial(serial); ok {
			return FormatDMY(d)
		}
		return ""
	}

	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return FormatDMY(d)
		}
	}

	return s
}

// fromSerial converts a spreadsheet serial day count to a calendar date.
// Serials at or below zero are not dates.
func fromSerial(serial float64) (time.Time, bool) {
	if serial <= 0 {
		return time.Time{}, false
	}

	days := int(serial)
	// Serials below 61 predate the phantom 29 Feb 1900 and sit one day
	// behind the shifted epoch.
	if days < 61 {
		days++
	}

	return serialEpoch.AddDate(0, 0, days), true
}

// FormatDMY renders a date as zero-padded DD/MM/YYYY.
func FormatDMY(d time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day(), int(d.Month()), d.Year())
}

// ParseDMY parses normalized DD/MM/YYYY (or D/M/YYYY) text into a calendar
// date at midnight UTC. The boolean is false for empty or malformed input.
//
// This is the single date parser used by the inference and aggregation
// modules; they only ever see dates that already went through Date.
func ParseDMY(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// =============================================================================
// TEXT
// =============================================================================

// Text normalizes a raw cell into trimmed text. Empty input yields "".
func Text(raw string) string {
	return strings.TrimSpace(raw)
}
