// Package core provides the ledger domain model: money values,
// transactions, savings goals, and the aggregation functions over them.
//
// This file contains the exact-decimal money representation. Amounts are
// held as integer cents so that no binary floating-point arithmetic ever
// touches a balance; float rounding would silently corrupt totals.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an exact decimal amount stored as integer cents.
// Sums may be negative (savings = income - expense); individual
// transaction and goal amounts are validated separately.
type Money struct {
	Cents int64
}

// ParseMoney converts a decimal string to a Money value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Explicit signs are
// rejected; zero is a valid parse result (a goal may start with nothing
// saved). Returns ErrInvalidAmount for malformed input.
//
// Examples:
//
//	ParseMoney("12.34")  -> 1234 cents
//	ParseMoney("12,34")  -> 1234 cents
//	ParseMoney("12.345") -> 1234 cents (rounds down)
//	ParseMoney("12.346") -> 1235 cents (rounds up)
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Magnitudes only; direction comes from the transaction kind
		return Money{}, ErrInvalidAmount
	}
	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
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
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	// Convert integer part - check for overflow
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// Add returns m + n.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}

// Sub returns m - n. The result may be negative.
func (m Money) Sub(n Money) Money {
	return Money{Cents: m.Cents - n.Cents}
}

// Cmp compares two amounts: -1 if m < n, 0 if equal, 1 if m > n.
func (m Money) Cmp(n Money) int {
	switch {
	case m.Cents < n.Cents:
		return -1
	case m.Cents > n.Cents:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// String returns the canonical decimal form, e.g. "1234.56" or "-0.05".
// ParseMoney(m.String()) == m for every non-negative value.
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Float64 returns the amount as a float for chart scaling and display.
// Never use this for arithmetic; fold over cents instead.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON serializes the amount as its canonical decimal string, the
// persisted wire form of all monetary fields.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts the canonical string form and, for tolerance with
// hand-edited files, a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return fmt.Errorf("money %q: %w", s, err)
	}
	*m = parsed
	return nil
}
