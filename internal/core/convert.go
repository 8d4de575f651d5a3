package core

// convert.go turns raw CSV cells into typed Values.
//
// Raw cells are either missing-value tokens, which load as missing, or text.
// Numeric coercion is strict: an optional sign, digits with an optional
// decimal point, and an optional exponent, or a signed inf/infinity spelled
// in any case. Anything else, including currency symbols and thousands
// separators, coerces to missing.

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a plain decimal or scientific number.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var infinityRegex = regexp.MustCompile(`^(?i)[+-]?inf(inity)?$`)

// missingTokens are raw cell values that load as missing.
// Matching is exact; " NA" is text.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissingToken reports whether a raw cell denotes a missing value.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// CellValue converts a raw CSV cell to a Value.
func CellValue(raw string) Value {
	if IsMissingToken(raw) {
		return Missing()
	}
	return TextValue(raw)
}

// ParseNumber parses s as a number after trimming whitespace.
// Values beyond float64 range parse as ±Inf. Returns false if s is empty or
// malformed.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if infinityRegex.MatchString(s) {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// ToNumber coerces a cell to a number. Cells that cannot be parsed
// become missing.
func ToNumber(v Value) Value {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) {
			return Missing()
		}
		return v
	case KindText:
		if f, ok := ParseNumber(v.Text); ok {
			return NumberValue(f)
		}
	}
	return Missing()
}

// FormatNumber renders f in its shortest exact decimal form: 10, 2.5, 0.001.
// Infinities render as inf and -inf.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
