// Package core provides the domain types, validation and aggregation logic
// for the expense ledger.
//
// This file contains money parsing and formatting. Amounts are held as
// integer cents so that sums stay exact; floats only appear at the edges
// (the model's JSON numbers and display formatting).
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MoneyFromFloat converts a decimal amount to cents, rounding to the
// nearest cent.
func MoneyFromFloat(f float64) Money {
	return Money{Cents: int64(math.Round(f * 100.0))}
}

// Rupees returns the amount as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Rupees() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with the currency sign and two decimals.
func (m Money) String() string {
	return fmt.Sprintf("₹%.2f", m.Rupees())
}

// ParseAmountToCents parses a raw amount cell into cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rounds half-up on the third decimal place. The digits are inspected as
// text rather than converted through float64, so values like 1.005 round
// exactly. Anything non-numeric or not strictly positive is an error;
// aggregation treats that as "skip this row".
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits are cents; the third rounds half-up.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
