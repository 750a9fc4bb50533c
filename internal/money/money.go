// Package money parses free-text monetary and quantity input into exact
// decimals and renders them back using regional digit grouping.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError indicates a raw amount string could not be parsed as a decimal.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid amount %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// fracEpsilon is the threshold below which a fractional part is treated as
// floating-point residue and dropped from display.
var fracEpsilon = decimal.NewFromFloat(0.0001)

// ParseAmount strips grouping separators and whitespace from raw and parses
// the remainder as a decimal. Empty input parses to zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ParseError{Raw: raw, Err: err}
	}
	return v, nil
}

// FormatGrouped renders v with lakh/crore digit grouping: the rightmost
// group is 3 digits, every group after that is 2 (1234567 -> "12,34,567").
// Two fractional digits are appended only when the fractional part exceeds
// a small epsilon, so whole amounts render without ".00" noise.
func FormatGrouped(v decimal.Decimal) string {
	rounded := v.Round(2)
	intPart := rounded.Truncate(0)
	frac := rounded.Sub(intPart).Abs()

	grouped := groupDigits(intPart.Abs().String())
	if rounded.IsNegative() {
		grouped = "-" + grouped
	}

	if frac.GreaterThan(fracEpsilon) {
		// frac is already rounded to 2 places; StringFixed pads "0.5" to "0.50".
		return grouped + "." + frac.StringFixed(2)[2:]
	}
	return grouped
}

// groupDigits inserts commas into an unsigned integer string: last group of
// 3, then groups of 2 from the right.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
