package currency

import (
	"github.com/shopspring/decimal"
)

// Rates maps currency codes to their value relative to a base currency.
// The base itself carries rate 1.
type Rates struct {
	Base  string
	Table map[string]decimal.Decimal
}

// fallbackRates is an approximate USD-based table used when no rate
// provider is reachable.
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"JPY": decimal.RequireFromString("149.5"),
	"CNY": decimal.RequireFromString("7.24"),
	"CAD": decimal.RequireFromString("1.36"),
	"AUD": decimal.RequireFromString("1.53"),
	"CHF": decimal.RequireFromString("0.88"),
	"KRW": decimal.RequireFromString("1320"),
	"INR": decimal.RequireFromString("83.1"),
	"SGD": decimal.RequireFromString("1.34"),
	"HKD": decimal.RequireFromString("7.82"),
	"TWD": decimal.RequireFromString("31.5"),
	"MXN": decimal.RequireFromString("17.1"),
	"BRL": decimal.RequireFromString("4.97"),
	"SEK": decimal.RequireFromString("10.4"),
	"NOK": decimal.RequireFromString("10.5"),
	"DKK": decimal.RequireFromString("6.87"),
	"NZD": decimal.RequireFromString("1.63"),
	"THB": decimal.RequireFromString("35.2"),
	"RUB": decimal.RequireFromString("91.5"),
	"ZAR": decimal.RequireFromString("18.9"),
	"PHP": decimal.RequireFromString("56.2"),
	"MYR": decimal.RequireFromString("4.72"),
	"IDR": decimal.RequireFromString("15600"),
}

// FallbackRates rebases the built-in USD table onto the requested base.
// An unknown base yields the USD table unchanged.
func FallbackRates(base string) Rates {
	if base == "USD" {
		return Rates{Base: "USD", Table: fallbackRates}
	}
	baseRate, ok := fallbackRates[base]
	if !ok {
		return Rates{Base: "USD", Table: fallbackRates}
	}
	rebased := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, rate := range fallbackRates {
		rebased[code] = rate.DivRound(baseRate, 6)
	}
	return Rates{Base: base, Table: rebased}
}

// Convert translates an amount between currencies through the rate table.
// Unknown currencies are treated as rate 1, so the amount passes through
// unconverted rather than failing the whole aggregation.
func (r Rates) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to || amount.IsZero() {
		return amount
	}
	if r.Base == from {
		return amount.Mul(r.rate(to))
	}
	if r.Base == to {
		return amount.DivRound(r.rate(from), 10)
	}
	inBase := amount.DivRound(r.rate(from), 10)
	return inBase.Mul(r.rate(to))
}

func (r Rates) rate(code string) decimal.Decimal {
	if rate, ok := r.Table[code]; ok && !rate.IsZero() {
		return rate
	}
	return decimal.NewFromInt(1)
}
