// Package format renders amounts for display using the regional
// thousand/lakh/crore conventions.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// GroupedNumber rounds amount to a whole unit and groups the digits with the
// rightmost three together and the rest in pairs (e.g. "12,34,567").
// Non-finite input renders as "0".
func GroupedNumber(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return "0"
	}

	rounded := mathutil.RoundUnit(amount)
	digits := strconv.FormatFloat(math.Abs(rounded), 'f', 0, 64)
	grouped := groupDigits(digits)
	if rounded < 0 {
		return "-" + grouped
	}
	return grouped
}

// GroupedInteger groups the digits of n the same way as GroupedNumber without
// passing through floating point.
func GroupedInteger(n uint64) string {
	return groupDigits(strconv.FormatUint(n, 10))
}

// Currency returns the grouped amount prefixed by symbol and a space
// (e.g. "₹ 1,00,000"). An empty symbol yields the bare number.
func Currency(symbol string, amount float64) string {
	grouped := GroupedNumber(amount)
	if symbol == "" {
		return grouped
	}
	return symbol + " " + grouped
}

// Percent renders an annual rate with at most two decimals and no trailing
// zeros (e.g. "4%", "10.5%").
func Percent(rate float64) string {
	if !mathutil.IsFinite(rate) {
		return "0%"
	}
	rounded := math.Round(rate*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	builder.WriteByte(',')
	builder.WriteString(tail)
	return builder.String()
}
