package currency

import (
	"context"
)

type StubRatesClient struct {
	rates      Rates
	err        error
	fetchCount int
}

func NewStubRatesClient(rates Rates, err error) *StubRatesClient {
	return &StubRatesClient{rates: rates, err: err}
}

func (s *StubRatesClient) FetchRates(ctx context.Context, base string) (Rates, error) {
	s.fetchCount++
	if s.err != nil {
		return Rates{}, s.err
	}
	return s.rates, nil
}
