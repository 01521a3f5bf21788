package currency

import (
	"context"
	"sync"
	"time"

	"github.com/expenso/expenso/internal/utils"
	log "github.com/sirupsen/logrus"
)

const cacheDuration = 24 * time.Hour

// Service hands out exchange rates, caching provider responses per base
// currency for a day. When the provider is unreachable it falls back to the
// built-in approximate table so conversion keeps working offline.
type Service interface {
	GetRates(ctx context.Context, base string) Rates
}

type ServiceImpl struct {
	client Client
	clock  utils.Clock

	mu    sync.Mutex
	cache map[string]cachedRates
}

type cachedRates struct {
	rates     Rates
	fetchedAt time.Time
}

func NewService(client Client, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		client: client,
		clock:  clock,
		cache:  map[string]cachedRates{},
	}
}

func (s *ServiceImpl) GetRates(ctx context.Context, base string) Rates {
	if base == "" {
		base = "USD"
	}

	s.mu.Lock()
	entry, ok := s.cache[base]
	s.mu.Unlock()
	if ok && s.clock.Now().Sub(entry.fetchedAt) < cacheDuration {
		return entry.rates
	}

	rates, err := s.client.FetchRates(ctx, base)
	if err != nil {
		log.Warnf("falling back to built-in rates for %s: %v", base, err)
		if ok {
			// A stale cache entry still beats the hardcoded table.
			return entry.rates
		}
		return FallbackRates(base)
	}

	s.mu.Lock()
	s.cache[base] = cachedRates{rates: rates, fetchedAt: s.clock.Now()}
	s.mu.Unlock()
	return rates
}
