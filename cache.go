package finly

import (
	"sync"
	"time"
)

// Cache TTLs, tuned to the volatility of each kind of market data.
const (
	PriceTTL    = 10 * time.Minute
	FXTTL       = time.Hour
	HistoryTTL  = 12 * time.Hour
	EventTTL    = 24 * time.Hour
	DividendTTL = 12 * time.Hour
)

// CacheStore is a keyed cache with caller-controlled staleness: a stored
// value has a single write timestamp, and each reader decides how old a
// value it can accept. The same entry can be fresh for one caller and stale
// for another.
//
// Implementations must tolerate concurrent readers and writers on the same
// key; the last write wins. There is no eviction beyond explicit Clear.
type CacheStore interface {
	// Get returns the value stored under key if its age does not exceed
	// maxAge. It reports false if the key was never set or the entry is
	// older than maxAge.
	Get(key string, maxAge time.Duration) ([]byte, bool)
	// Set stores a value under key, overwriting any previous entry and
	// resetting its timestamp.
	Set(key string, value []byte)
	// Clear removes every entry whose key starts with prefix. The empty
	// prefix clears everything.
	Clear(prefix string)
}

type memoryEntry struct {
	value   []byte
	written time.Time
}

// MemoryCache is an in-process CacheStore. It backs tests and short-lived
// runs that do not want the persisted cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.written) > maxAge {
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, written: c.now()}
}

func (c *MemoryCache) Clear(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prefix == "" {
		c.entries = make(map[string]memoryEntry)
		return
	}
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

var _ CacheStore = (*MemoryCache)(nil)
