// Package core defines the record shapes returned by the reconciliation
// engine and the money handling used everywhere amounts are aggregated
// or displayed.
//
// This file contains decimal amount parsing and formatting. Amounts are
// held as exact cents so aggregation is integer addition; rounding to two
// fraction digits happens only at render time.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Amount is a monetary value in exact cents.
type Amount struct {
	Cents int64
}

// ErrInvalidAmount is returned for amount strings that are not decimal numbers.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal string to an Amount with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. A leading minus is
// accepted because engine payloads may carry negative net values after
// credits. Zero is a valid amount (absent fields default to it).
//
// Examples:
//
//	ParseAmount("12.34")  -> {1234}, nil
//	ParseAmount("12,34")  -> {1234}, nil
//	ParseAmount("12.345") -> {1234}, nil (rounds down)
//	ParseAmount("12.346") -> {1235}, nil (rounds up)
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Amount{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return Amount{}, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Amount{}, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Amount{Cents: cents}, nil
}

// Add returns the exact sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{Cents: a.Cents + b.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Cents == 0
}

// String renders the amount with exactly two fraction digits, e.g. "12.34".
func (a Amount) String() string {
	cents := a.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// MarshalJSON emits the amount as a plain JSON number with two fraction
// digits, matching what the engine sends.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts JSON numbers, quoted decimal strings, and null.
// The number token text is parsed directly so no float drift enters the
// cents representation; null and absent fields both decode to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		a.Cents = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		a.Cents = 0
		return nil
	}
	parsed, err := ParseAmount(s)
	if err == nil {
		a.Cents = parsed.Cents
		return nil
	}
	// Scientific notation or other float forms: fall back to float parsing
	// with half-up rounding to cents.
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return ErrInvalidAmount
	}
	if f < 0 {
		a.Cents = -int64(-f*100 + 0.5)
	} else {
		a.Cents = int64(f*100 + 0.5)
	}
	return nil
}
