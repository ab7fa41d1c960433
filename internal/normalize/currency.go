// Package normalize converts raw sheet cells into typed values. Every function
// here is total: malformed input yields a documented zero value, never an error.
package normalize

import (
	"strconv"
	"strings"
)

// Convention selects how a source writes decimal numbers. It is a property of
// the source sheet, configured per source, never guessed per cell.
type Convention string

const (
	// DotDecimal covers sheets exported as "1,234.56".
	DotDecimal Convention = "dot"
	// CommaDecimal covers sheets exported as "1.234,56".
	CommaDecimal Convention = "comma"
)

// ParseCurrency converts a raw monetary cell to a float. Currency symbols,
// spaces and percent signs are stripped; empty cells, "-" placeholders and
// spreadsheet error markers (DIV/0) parse to 0, as does anything non-numeric.
func ParseCurrency(raw string, conv Convention) float64 {
	s := strings.NewReplacer("$", "", " ", "", " ", "", "%", "").Replace(raw)
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.Contains(s, "DIV/0") {
		return 0
	}

	switch conv {
	case CommaDecimal:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCount parses an integer count cell that may carry the same formatting
// defects as currency cells. Negative values are floored to 0.
func ParseCount(raw string, conv Convention) int {
	v := ParseCurrency(raw, conv)
	if v < 0 {
		return 0
	}
	return int(v)
}
