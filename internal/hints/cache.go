package hints

// #region imports
import (
	"sync"
	"time"
)

// #endregion

// #region active-cache

// activeCache memoizes ActiveHints results for a short TTL. Staleness of
// a few seconds is acceptable by contract (the per-turn path reads it);
// writes invalidate the whole cache rather than tracking keys.
type activeCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	hints   []Hint
	fetched time.Time
}

func newActiveCache(ttl time.Duration) *activeCache {
	return &activeCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *activeCache) get(sessionID, userID string) ([]Hint, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sessionID+"\x00"+userID]
	if !ok || time.Since(e.fetched) > c.ttl {
		return nil, false
	}
	return e.hints, true
}

func (c *activeCache) put(sessionID, userID string, hints []Hint) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID+"\x00"+userID] = cacheEntry{hints: hints, fetched: time.Now()}
}

func (c *activeCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// #endregion
