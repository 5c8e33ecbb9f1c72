package core

import (
	"errors"
	"strconv"
)

// BaseCurrency is the currency amounts are stored in before any display
// conversion.
const BaseCurrency = "KZT"

// RateTable maps a currency code to the multiplicative factor relative to
// the base currency. The base currency maps to 1.
type RateTable map[string]float64

// DefaultRates is the static rate configuration shipped with the app.
func DefaultRates() RateTable {
	return RateTable{
		"KZT": 1,
		"RUB": 0.2,
		"CNY": 0.014,
		"JPY": 0.29,
	}
}

var ErrZeroRate = errors.New("currency rate is zero")

// Convert maps a base-unit amount into the given display currency. Unknown
// currency codes fall back to a 1:1 factor; no error is raised.
func Convert(amount float64, rates RateTable, currency string) float64 {
	rate, ok := rates[currency]
	if !ok {
		rate = 1
	}
	return amount * rate
}

// ToBase maps a display-currency amount back to base units before
// persisting. A zero rate would divide to a non-finite value, so it is
// rejected here instead.
func ToBase(amount float64, rates RateTable, currency string) (float64, error) {
	rate, ok := rates[currency]
	if !ok {
		rate = 1
	}
	if rate == 0 {
		return 0, ErrZeroRate
	}
	return amount / rate, nil
}

// FormatAmount renders a monetary figure with fixed 2-decimal rounding and
// the currency code, e.g. "1234.50 KZT".
func FormatAmount(amount float64, currency string) string {
	return strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency
}
