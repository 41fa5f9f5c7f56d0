package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
)

// Cache memoizes filter plans. Entries are static, so a plan depends only on
// the scope (which entry list) and the filter.
type Cache struct {
	lru    *expirable.LRU[string, Result]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCache builds a plan cache and registers its counters with reg when reg
// is not nil.
func NewCache(size int, ttl time.Duration, reg prometheus.Registerer) *Cache {
	if size <= 0 {
		size = 256
	}
	c := &Cache{
		lru: expirable.NewLRU[string, Result](size, nil, ttl),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kwa_catalog_plan_cache_hits_total",
			Help: "Catalog filter plans served from cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kwa_catalog_plan_cache_misses_total",
			Help: "Catalog filter plans computed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.hits, c.misses)
	}
	return c
}

// Plan returns the cached plan for (scope, f) or computes and stores it.
func (c *Cache) Plan(scope string, entries []Entry, f Filter) Result {
	if c == nil {
		return Plan(entries, f)
	}
	key := scope + "\x00" + f.Category + "\x00" + f.Term
	if res, ok := c.lru.Get(key); ok {
		c.hits.Inc()
		return res
	}
	c.misses.Inc()
	res := Plan(entries, f)
	c.lru.Add(key, res)
	return res
}

// Len reports how many plans are cached.
func (c *Cache) Len() int { return c.lru.Len() }
