// Package core holds the ledger model: money and competency codecs,
// the expense record, and the filtering/aggregation logic.
//
// This file contains the money display convention used throughout the
// UI: a fixed "R$" prefix, dot as thousands separator and comma as
// decimal separator.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney rounds the amount to two fractional digits (half-up) and
// renders it with the localized display convention.
//
// Examples:
//
//	FormatMoney(1234.5)  -> "R$ 1.234,50"
//	FormatMoney(2.345)   -> "R$ 2,35"
func FormatMoney(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot+1:]

	var b strings.Builder
	b.WriteString("R$ ")
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// ParseMoney parses user-supplied monetary text written in the display
// convention: optional "R$" prefix, dot as thousands separator, comma
// as decimal separator. Sign prefixes are rejected; amounts are always
// non-negative. Returns ErrInvalidAmount when the cleaned text is not
// a valid decimal number.
//
// Examples:
//
//	ParseMoney("1.234,56") -> 1234.56, nil
//	ParseMoney("R$ 99,90") -> 99.90, nil
//	ParseMoney("abc")      -> 0, ErrInvalidAmount
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	// Thousands dots go away, the decimal comma becomes a dot.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
