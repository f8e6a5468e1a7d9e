// Package money normalizes heterogeneous monetary inputs into canonical
// two-decimal euro amounts. Parsing never fails: anything unparsable
// collapses to zero, which matches how the rest of the system treats
// missing or malformed amounts.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// roundEpsilon counteracts binary representation error on the scaled
// integer before rounding (1.005*100 sits just below 100.5).
const roundEpsilon = 1e-9

// ParseAmount accepts a number, a numeric string or nil and returns the
// amount as float64. Strings may carry a currency symbol, whitespace and
// either European ("1.234,56") or US ("1234.56") separators.
func ParseAmount(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(t)
	case float32:
		return finiteOrZero(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case string:
		return ParseString(t)
	default:
		return 0
	}
}

// ParseString parses a monetary string per the grammar above.
func ParseString(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '€' || r == '$' || r == '£' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// European format: dot groups thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// Round2 rounds to two decimals, half away from zero on the scaled
// integer. It is idempotent and must be applied exactly once per derived
// monetary field, at the final aggregation point.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	scaled := x * 100
	if scaled >= 0 {
		scaled += roundEpsilon
	} else {
		scaled -= roundEpsilon
	}
	return math.Round(scaled) / 100
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
