package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell values arrive from three kinds of readers (excelize, extrame/xls,
// encoding/csv) and all of them hand us strings. The source workbooks are
// hand-maintained, so every parser here recovers to a caller-supplied
// default instead of failing the row.

// Markers that mean "no value" in the source files.
const divErrMarker = "#DIV/0!"

var utcOffsetSuffix = regexp.MustCompile(`\s*-\d{4}$`)

// Decimal parses a monetary cell. Thousands separators, currency symbols
// and stray tabs are stripped before parsing. Empty cells, "-" placeholders
// and Excel division errors yield the default. A nil default returns nil,
// which is how callers keep "not reported" distinct from zero.
func Decimal(val string, def *decimal.Decimal) *decimal.Decimal {
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "$", "", "\t", "").Replace(val))
	if cleaned == "" || cleaned == "-" || cleaned == divErrMarker {
		return def
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return def
	}
	return &d
}

// DecimalOrZero is Decimal with a zero default, for the aggregate fact
// columns where absence means zero.
func DecimalOrZero(val string) decimal.Decimal {
	zero := decimal.Zero
	return *Decimal(val, &zero)
}

var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2-1-2006 15:04",
	"2-1-2006",
}

// Date parses a date cell against the formats seen across the platform
// exports. Trailing "+HH:MM" timezone suffixes and "-HHMM" UTC offsets are
// stripped first. Returns nil when nothing matches; callers treat nil as
// "skip this row".
func Date(val string) *time.Time {
	s := strings.TrimSpace(strings.ReplaceAll(val, "\t", ""))
	if s == "" {
		return nil
	}
	if i := strings.Index(s, "+"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = utcOffsetSuffix.ReplaceAllString(s, "")
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

// String trims the cell and strips embedded tabs (the TikTok exports have
// been observed to carry stray tabs inside fields).
func String(val, def string) string {
	s := strings.TrimSpace(strings.ReplaceAll(val, "\t", ""))
	if s == "" {
		return def
	}
	return s
}

// Int parses an integer cell. Quantities occasionally arrive as "12.0",
// so the value is parsed as a float and truncated.
func Int(val string, def int) int {
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "\t", "").Replace(val))
	if cleaned == "" {
		return def
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return def
	}
	return int(f)
}
