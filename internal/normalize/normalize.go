// Package normalize converts locale-specific amount and date text from bank
// statement exports into canonical values.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// unicodeMinus is U+2212, used by some bank exports instead of ASCII '-'.
const unicodeMinus = "−"

// Amount parses a European-formatted number like "−50,00" or "1.234,56".
// Thousands separators are removed before the decimal comma is substituted.
// Malformed input degrades to zero rather than failing; legacy exports are
// too dirty for a strict parse, and commit validation still checks presence.
func Amount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, unicodeMinus, "-")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PlainAmount parses a dot-decimal number with the same zero fallback as Amount.
func PlainAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, unicodeMinus, "-")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Date parses a date strictly against the given layout. Each bank has one
// fixed format; a non-conforming value is treated as unset and surfaced
// later at commit validation.
func Date(s, layout string) (time.Time, bool) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
