package tabular

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var missingMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
}

// ErrNonFinite rejects inf and nan spellings that strconv accepts.
var ErrNonFinite = errors.New("non-finite number")

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// IsMissing reports whether a cell holds no value.
func IsMissing(s string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Float reads a numeric cell. ok is false for a missing cell; a malformed or
// non-finite value yields a *ParseError.
func (t *Table) Float(row int, column string) (v float64, ok bool, err error) {
	raw := t.Value(row, column)
	if IsMissing(raw) {
		return 0, false, nil
	}
	v, err = parseFinite(raw)
	if err != nil {
		return 0, false, &ParseError{Table: t.Name, Row: row, Column: column, Value: raw, Err: err}
	}
	return v, true, nil
}

// FloatOr coerces s to a number, falling back to def when s is missing,
// malformed or non-finite.
func FloatOr(s string, def float64) float64 {
	if IsMissing(s) {
		return def
	}
	v, err := parseFinite(s)
	if err != nil {
		return def
	}
	return v
}

// Truthy matches the producers' boolean spellings.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// ParseDate truncates to the calendar day. ok is false when no layout matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			y, m, d := ts.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatFloat renders v the way output tables carry numbers.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
