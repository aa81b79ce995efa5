package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"skycast/internal/domain"
)

// RateLimited wraps a Fetcher so outbound calls stay under the provider's
// request quota. It waits for a token; it never retries.
type RateLimited struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

var _ Fetcher = (*RateLimited)(nil)

// NewRateLimited creates a rate limited fetcher.
// rps may be fractional for less than one request per second.
func NewRateLimited(fetcher Fetcher, rps float64, burst int) *RateLimited {
	return &RateLimited{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchWeather waits for limiter permission, then forwards to the wrapped fetcher
func (r *RateLimited) FetchWeather(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.WeatherSnapshot{}, newFetchError(KindCanceled, location, fmt.Errorf("rate limit wait canceled: %w", err))
	}
	return r.fetcher.FetchWeather(ctx, location)
}
