package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"urlclient/internal/domain"
)

const (
	baseEntryCost  = 256
	clickEntryCost = 128
)

// StatsCache holds fetched statistics keyed by short code. Entries expire
// after ttl; a zero ttl keeps them until Clear.
type StatsCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func New(maxSizePow2 int, ttl time.Duration) (*StatsCache, error) {
	maxCost := max(1, int64(1)<<maxSizePow2)
	numCounters := max(1, maxCost/100)

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &StatsCache{cache: cache, ttl: ttl}, nil
}

func (c *StatsCache) Get(shortCode string) (domain.URLStatistics, bool) {
	val, found := c.cache.Get(shortCode)
	if !found {
		return domain.URLStatistics{}, false
	}
	return val.(domain.URLStatistics), true
}

// Set stores stats and waits for the write to become visible, so a Get
// right after Set observes it unless the admission policy rejected it.
func (c *StatsCache) Set(shortCode string, stats domain.URLStatistics) bool {
	ok := c.cache.SetWithTTL(shortCode, stats, cost(shortCode, stats), c.ttl)
	c.cache.Wait()
	return ok
}

func (c *StatsCache) Delete(shortCode string) {
	c.cache.Del(shortCode)
}

func (c *StatsCache) Clear() {
	c.cache.Clear()
}

func (c *StatsCache) Close() {
	c.cache.Close()
}

func (c *StatsCache) Stats() (hits, misses uint64, ratio float64) {
	metrics := c.cache.Metrics
	hits = metrics.Hits()
	misses = metrics.Misses()
	ratio = metrics.Ratio()
	return
}

func cost(shortCode string, stats domain.URLStatistics) int64 {
	u := stats.ShortenedURL
	n := baseEntryCost + len(shortCode) + len(u.OriginalURL) + len(u.ShortURL)
	for _, click := range stats.ClickDetails {
		n += clickEntryCost + len(click.Source) + len(click.Location) + len(click.UserAgent)
	}
	return int64(n)
}
