// Package display converts and formats amounts for presentation. The engine
// always computes in the bill's base currency; everything here is a pure
// display concern driven by explicit configuration.
package display

import (
	"fmt"
	"sort"

	"github.com/wutcharinth/splitbill/internal/models"
)

// currencyInfo describes how a currency is rendered.
type currencyInfo struct {
	Symbol   string
	Decimals int
}

var currencies = map[string]currencyInfo{
	"THB": {"฿", 2},
	"USD": {"$", 2},
	"EUR": {"€", 2},
	"GBP": {"£", 2},
	"JPY": {"¥", 0},
	"KRW": {"₩", 0},
	"CNY": {"¥", 2},
	"SGD": {"S$", 2},
	"MYR": {"RM", 2},
	"VND": {"₫", 0},
	"IDR": {"Rp", 0},
	"INR": {"₹", 2},
	"AUD": {"A$", 2},
	"CAD": {"C$", 2},
	"CHF": {"CHF", 2},
	"HKD": {"HK$", 2},
	"TWD": {"NT$", 2},
	"PHP": {"₱", 2},
}

// Convert applies a display exchange rate to a base-currency amount. A nil
// rate means no conversion (rate 1).
func Convert(amount float64, rate *models.ExchangeRate) float64 {
	if rate == nil {
		return amount
	}
	return amount * rate.Rate
}

// Format renders an amount in the given currency with its symbol and
// conventional decimal places. Unknown currencies fall back to the code
// prefix with two decimals.
func Format(amount float64, currency string) string {
	info, ok := currencies[currency]
	if !ok {
		return fmt.Sprintf("%s %.2f", currency, amount)
	}
	return fmt.Sprintf("%s%.*f", info.Symbol, info.Decimals, amount)
}

// Currencies returns all known currency codes, pinned ones first (in pinned
// order), the rest alphabetical.
func Currencies(pinned []string) []string {
	seen := make(map[string]bool, len(pinned))
	out := make([]string, 0, len(currencies))
	for _, code := range pinned {
		if _, ok := currencies[code]; ok && !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}

	rest := make([]string, 0, len(currencies))
	for code := range currencies {
		if !seen[code] {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
