package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// Number converts a loosely-typed value to a float64. Thousands separators
// (literal commas) are stripped before parsing. Returns nil when the value
// is missing or does not parse; it never fails.
func Number(v any) *float64 {
	if v == nil {
		return nil
	}
	s := strings.ReplaceAll(stringify(v), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Integer converts a loosely-typed value to an int64. Fractional numeric
// input truncates. Unlike Number, string input keeps its thousands
// separators and fails to parse with them present; downstream consumers
// rely on the current behavior, so it stays.
func Integer(v any) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		i := int64(n)
		return &i
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	default:
		i, err := strconv.ParseInt(strings.TrimSpace(stringify(v)), 10, 64)
		if err != nil {
			return nil
		}
		return &i
	}
}

// Date converts a loosely-formatted date value to canonical YYYY-MM-DD.
// When the input contains the literal substring " on " (e.g. "Reviewed in
// India on March 3, 2023"), everything up to and including the first
// occurrence is discarded before parsing. If the remainder still does not
// parse, the trimmed remainder is returned unchanged so human-readable
// dates are never destroyed; only nil or blank input yields nil.
func Date(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return nil
	}
	if i := strings.Index(s, " on "); i >= 0 {
		s = strings.TrimSpace(s[i+len(" on "):])
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return &s
	}
	out := t.Format("2006-01-02")
	return &out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
