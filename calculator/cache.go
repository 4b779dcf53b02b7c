/*
cache.go - Fingerprint-keyed memoization

PURPOSE:
  Wraps the pure engine with a bounded cache so repeated UI requests for
  the same employee/date never re-expand presence days. Values are
  immutable once computed (the underlying computation is pure), so there
  is no invalidation concern - only bounded size, handled by LRU
  eviction, since presence history grows without bound over a long
  operational history.

CONCURRENCY:
  The LRU is safe for concurrent readers and writers. singleflight
  collapses concurrent computations of the same key; a rare duplicate
  compute-and-overwrite under a race would still be correct (results
  are idempotent), suppression just avoids the redundant work.

METRICS:
  Hit/miss/eviction counters are plain atomics so ClearMetrics can
  reset them for test isolation; the Cache doubles as a
  prometheus.Collector for the server's /metrics endpoint.
*/
package calculator

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds the number of memoized results.
const DefaultCacheSize = 4096

// Metrics is a point-in-time snapshot of cache behavior.
type Metrics struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Cache memoizes immutable computation results under fingerprint keys.
type Cache struct {
	entries *lru.Cache[string, any]
	group   singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	hitsDesc      *prometheus.Desc
	missesDesc    *prometheus.Desc
	evictionsDesc *prometheus.Desc
}

// NewCache returns a bounded cache. Size <= 0 falls back to
// DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &Cache{
		hitsDesc: prometheus.NewDesc("compliance_cache_hits_total",
			"Compliance results served from cache.", nil, nil),
		missesDesc: prometheus.NewDesc("compliance_cache_misses_total",
			"Compliance results computed on demand.", nil, nil),
		evictionsDesc: prometheus.NewDesc("compliance_cache_evictions_total",
			"Cached compliance results evicted under memory bound.", nil, nil),
	}
	entries, err := lru.NewWithEvict[string, any](size, func(string, any) {
		c.evictions.Add(1)
	})
	if err != nil {
		// lru.New only fails on non-positive size, which is guarded above.
		panic(err)
	}
	c.entries = entries
	return c
}

// GetOrCompute returns the cached value for key, computing and storing
// it on a miss. Concurrent callers for the same key share one compute.
func (c *Cache) GetOrCompute(key string, compute func() (any, error)) (any, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check: another caller may have stored while we queued.
		if v, ok := c.entries.Get(key); ok {
			c.hits.Add(1)
			return v, nil
		}
		c.misses.Add(1)
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, v)
		return v, nil
	})
	return v, err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops all entries. Purged entries do not count as evictions.
func (c *Cache) Purge() {
	// Snapshot eviction count around the purge: the LRU fires the evict
	// callback per purged entry, which would pollute the metric.
	before := c.evictions.Load()
	c.entries.Purge()
	c.evictions.Store(before)
}

// MetricsSnapshot returns current counter values.
func (c *Cache) MetricsSnapshot() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ClearMetrics zeroes all counters. Test isolation only.
func (c *Cache) ClearMetrics() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// =============================================================================
// PROMETHEUS COLLECTOR
// =============================================================================

var _ prometheus.Collector = (*Cache)(nil)

func (c *Cache) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitsDesc
	ch <- c.missesDesc
	ch <- c.evictionsDesc
}

func (c *Cache) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(c.hits.Load()))
	ch <- prometheus.MustNewConstMetric(c.missesDesc, prometheus.CounterValue, float64(c.misses.Load()))
	ch <- prometheus.MustNewConstMetric(c.evictionsDesc, prometheus.CounterValue, float64(c.evictions.Load()))
}
