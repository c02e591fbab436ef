package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyReplacer strips the separators and glyphs that show up in
// spreadsheet price cells ("1,500", "฿2,000", "$30").
var currencyReplacer = strings.NewReplacer(",", "", "฿", "", "$", "")

// ParseCurrency converts a currency-like cell value to a decimal amount.
// Empty or unparseable values resolve to zero; unparseable input is logged
// as a warning rather than surfaced, matching how totals tolerate dirty rows.
func ParseCurrency(text string) decimal.Decimal {
	clean := strings.TrimSpace(currencyReplacer.Replace(text))
	if clean == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		LogWarn("Cannot convert price to number", map[string]interface{}{"value": text})
		return decimal.Zero
	}
	return amount
}
