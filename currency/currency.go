// Package currency formats monetary amounts for display. Amounts are stored
// currency-agnostic; the code chosen by the caller only decides how many
// minor-unit digits a rendered figure carries. Nothing here affects stored
// values or comparisons.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCodes are the ISO 4217 codes whose minor unit is the whole
// unit. Everything else renders with two decimal places.
var zeroDecimalCodes = map[string]bool{
	"BIF": true,
	"CLP": true,
	"DJF": true,
	"GNF": true,
	"ISK": true,
	"JPY": true,
	"KMF": true,
	"KRW": true,
	"PYG": true,
	"RWF": true,
	"UGX": true,
	"VND": true,
	"VUV": true,
	"XAF": true,
	"XOF": true,
	"XPF": true,
}

// MinorUnits returns the number of decimal places a currency renders with.
func MinorUnits(code string) int {
	if zeroDecimalCodes[strings.ToUpper(code)] {
		return 0
	}
	return 2
}

// Format renders an amount for display with the currency's minor units and
// the code as suffix, e.g. "1234.50 GBP" or "1200 JPY". Rounding is half-up
// at the minor-unit boundary and applies to the rendered string only.
func Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	return amount.StringFixed(int32(MinorUnits(code))) + " " + code
}

// FormatAmount renders just the quantized figure without the code suffix.
func FormatAmount(amount decimal.Decimal, code string) string {
	return amount.StringFixed(int32(MinorUnits(strings.ToUpper(code))))
}
