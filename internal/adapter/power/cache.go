package power

import (
	"context"
	"fmt"

	"github.com/atmosight/climate-insight-service/internal/domain"
	"github.com/atmosight/climate-insight-service/internal/lru"
	"github.com/atmosight/climate-insight-service/internal/observability"
)

// CachedFetcher wraps a SeriesFetcher with an in-memory LRU cache keyed by
// coordinate, variable, and year range. The cache is explicit and owned by
// the caller that constructs it; dropping the CachedFetcher drops all cached
// series.
type CachedFetcher struct {
	inner   domain.SeriesFetcher
	cache   *lru.Cache[string, []domain.RawObservation]
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a series fetcher.
func NewCachedFetcher(inner domain.SeriesFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   lru.New[string, []domain.RawObservation](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchDaily(ctx context.Context, req domain.SeriesRequest) ([]domain.RawObservation, error) {
	key := fmt.Sprintf("%.4f|%.4f|%s|%d|%d", req.Lat, req.Lon, req.Variable, req.StartYear, req.EndYear)
	if obs, ok := c.cache.Get(key); ok {
		c.metrics.SeriesCache.WithLabelValues("hit").Inc()
		return obs, nil
	}
	c.metrics.SeriesCache.WithLabelValues("miss").Inc()

	obs, err := c.inner.FetchDaily(ctx, req)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty series so transient empty responses can be retried.
	if len(obs) > 0 {
		c.cache.Put(key, obs)
	}
	return obs, nil
}

// Ping delegates to the wrapped fetcher when it supports readiness checks.
func (c *CachedFetcher) Ping(ctx context.Context) error {
	type pinger interface{ Ping(context.Context) error }
	if p, ok := c.inner.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
