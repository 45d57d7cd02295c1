package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundCents rounds an amount to 2 decimal places, half away from zero
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatUSD formats an amount as a string like "$1,234.50".
// Uses comma as thousands separator.
func FormatUSD(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + $
	b.Grow(len(s) + len(intPart)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)

	return b.String()
}

// ParseMoney parses a decimal amount from user input, accepting an optional leading "$"
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
