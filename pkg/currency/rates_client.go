package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Client fetches exchange rates for a base currency from a remote provider.
type Client interface {
	FetchRates(ctx context.Context, base string) (Rates, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates queries the provider, retrying transient failures a couple of
// times before giving up.
func (c *HTTPClient) FetchRates(ctx context.Context, base string) (Rates, error) {
	var body ratesResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+base, nil)
			if err != nil {
				return err
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("rate provider returned status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&body)
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("retrying rate fetch for %s (attempt %d): %v", base, n+1, err)
		}),
	)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}
	if len(body.Rates) == 0 {
		return Rates{}, fmt.Errorf("rate provider returned no rates for %s", base)
	}

	table := make(map[string]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		table[code] = decimal.NewFromFloat(rate)
	}
	return Rates{Base: base, Table: table}, nil
}
