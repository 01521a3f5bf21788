package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expenso/expenso/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func usdRates() Rates {
	return Rates{
		Base: "USD",
		Table: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.5"),
			"GBP": decimal.RequireFromString("0.8"),
		},
	}
}

func TestRates_Convert(t *testing.T) {
	rates := usdRates()
	tests := []struct {
		name   string
		amount string
		from   string
		to     string
		want   string
	}{
		{"same currency is identity", "12.34", "EUR", "EUR", "12.34"},
		{"base to quote", "100", "USD", "EUR", "50"},
		{"quote to base", "50", "EUR", "USD", "100"},
		{"quote to quote goes through base", "50", "EUR", "GBP", "80"},
		{"unknown currency passes through", "42", "XXX", "USD", "42"},
		{"zero amount", "0", "USD", "EUR", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rates.Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Convert(%s, %s, %s) = %s, want %s", tt.amount, tt.from, tt.to, got, tt.want)
		})
	}
}

func TestFallbackRates_RebasesTable(t *testing.T) {
	// given the built-in table is USD-based with EUR at 0.92

	// when
	rates := FallbackRates("EUR")

	// then EUR becomes the unit currency
	assert.Equal(t, "EUR", rates.Base)
	assert.True(t, rates.Table["EUR"].Equal(decimal.NewFromInt(1)))
	usd := rates.Table["USD"]
	assert.True(t, usd.GreaterThan(decimal.NewFromInt(1)), "USD per EUR should exceed 1, got %s", usd)
}

func TestFallbackRates_UnknownBaseFallsBackToUSD(t *testing.T) {
	rates := FallbackRates("XXX")
	assert.Equal(t, "USD", rates.Base)
}

func TestCurrencyService_CachesForADay(t *testing.T) {
	// given
	client := NewStubRatesClient(usdRates(), nil)
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	service := NewService(client, clock)

	// when
	service.GetRates(context.Background(), "USD")
	clock.SetNow(clock.FixedNow.Add(23 * time.Hour))
	service.GetRates(context.Background(), "USD")

	// then the second call is served from cache
	assert.Equal(t, 1, client.fetchCount)

	// when the cache expires
	clock.SetNow(clock.FixedNow.Add(2 * time.Hour))
	service.GetRates(context.Background(), "USD")

	// then the provider is queried again
	assert.Equal(t, 2, client.fetchCount)
}

func TestCurrencyService_FallsBackWhenProviderDown(t *testing.T) {
	// given
	client := NewStubRatesClient(Rates{}, errors.New("connection refused"))
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	service := NewService(client, clock)

	// when
	rates := service.GetRates(context.Background(), "USD")

	// then the built-in table is used
	assert.Equal(t, "USD", rates.Base)
	assert.True(t, rates.Table["EUR"].Equal(decimal.RequireFromString("0.92")))
}

func TestCurrencyService_ServesStaleCacheOverFallback(t *testing.T) {
	// given a successful fetch followed by an outage
	client := NewStubRatesClient(usdRates(), nil)
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	service := NewService(client, clock)
	service.GetRates(context.Background(), "USD")
	client.err = errors.New("connection refused")
	clock.SetNow(clock.FixedNow.Add(48 * time.Hour))

	// when
	rates := service.GetRates(context.Background(), "USD")

	// then the stale table wins over the hardcoded one
	assert.True(t, rates.Table["EUR"].Equal(decimal.RequireFromString("0.5")))
}
