package store

import (
	"sync"
	"time"

	"github.com/i474232898/ocean-status/internal/model"
)

// DefaultTTL is how long a computed response is served before recomputation.
const DefaultTTL = 10 * time.Minute

type entry struct {
	resp     *model.AggregateResponse
	storedAt time.Time
}

// ResponseCache is a concurrency-safe in-memory cache of aggregate responses
// keyed by region id. Expired entries are evicted lazily on read.
type ResponseCache struct {
	mu sync.RWMutex

	// key: canonical region id
	data map[string]entry

	ttl   time.Duration
	clock model.Clock
}

// NewResponseCache creates a ResponseCache. A ttl <= 0 falls back to DefaultTTL.
func NewResponseCache(ttl time.Duration, clock model.Clock) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = model.RealClock{}
	}
	return &ResponseCache{
		data:  make(map[string]entry),
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns a copy of the cached response for a region until its age
// exceeds the TTL.
func (c *ResponseCache) Get(regionID string) (*model.AggregateResponse, bool) {
	c.mu.RLock()
	e, ok := c.data[regionID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.clock.Now().Sub(e.storedAt) <= c.ttl {
		return e.resp.Clone(), true
	}

	c.mu.Lock()
	// Another writer may have refreshed the entry in between.
	if cur, ok := c.data[regionID]; ok && cur.storedAt.Equal(e.storedAt) {
		delete(c.data, regionID)
	}
	c.mu.Unlock()
	return nil, false
}

// Put stores a copy of resp for a region, replacing any previous entry.
func (c *ResponseCache) Put(regionID string, resp *model.AggregateResponse) {
	if resp == nil {
		return
	}
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[regionID] = entry{resp: resp.Clone(), storedAt: now}
}

// Len reports the number of entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
