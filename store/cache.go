package store

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/aroods/finly"
)

// Cache is the persisted market-data cache, backed by the api_cache table
// of the same database as the rest of the portfolio. Entries survive
// restarts so a fresh process starts warm.
type Cache struct {
	store *Store
	now   func() time.Time
}

// Cache returns the persisted cache view of the store.
func (s *Store) Cache() *Cache {
	return &Cache{store: s, now: time.Now}
}

// Get returns the value under key if its age does not exceed maxAge. Any
// storage error counts as a miss: the caller refetches from the provider.
func (c *Cache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	var (
		value   []byte
		updated string
	)
	err := c.store.db.QueryRow(`SELECT value, updated_at FROM api_cache WHERE key = ?`, key).
		Scan(&value, &updated)
	if err != nil {
		return nil, false
	}
	written, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(written) > maxAge {
		return nil, false
	}
	return value, true
}

// Set stores a value under key, resetting its timestamp. A write failure
// is logged and swallowed: a cold cache is a performance problem, not a
// correctness one.
func (c *Cache) Set(key string, value []byte) {
	_, err := c.store.db.Exec(`
		INSERT INTO api_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, c.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		log.Printf("cache write for %q failed: %v", key, err)
	}
}

// Clear removes every entry whose key starts with prefix; the empty prefix
// empties the cache.
func (c *Cache) Clear(prefix string) {
	var err error
	if prefix == "" {
		_, err = c.store.db.Exec(`DELETE FROM api_cache`)
	} else {
		_, err = c.store.db.Exec(`DELETE FROM api_cache WHERE key LIKE ? ESCAPE '\'`,
			likeEscape(prefix)+"%")
	}
	if err != nil {
		log.Printf("cache clear %q failed: %v", prefix, err)
	}
}

func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// CacheStats describes the cache content by key namespace (the part of the
// key before the first colon).
type CacheStats struct {
	Entries  int
	ByPrefix map[string]int
	Oldest   time.Time
	Newest   time.Time
}

// Prefixes returns the stat namespaces sorted.
func (s CacheStats) Prefixes() []string {
	prefixes := make([]string, 0, len(s.ByPrefix))
	for p := range s.ByPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Stats scans the cache table and summarizes it.
func (c *Cache) Stats() (CacheStats, error) {
	rows, err := c.store.db.Query(`SELECT key, updated_at FROM api_cache`)
	if err != nil {
		return CacheStats{}, err
	}
	defer rows.Close()

	stats := CacheStats{ByPrefix: make(map[string]int)}
	for rows.Next() {
		var key, updated string
		if err := rows.Scan(&key, &updated); err != nil {
			return CacheStats{}, err
		}
		stats.Entries++
		prefix := key
		if i := strings.Index(key, ":"); i > 0 {
			prefix = key[:i]
		}
		stats.ByPrefix[prefix]++
		if written, err := time.Parse(time.RFC3339, updated); err == nil {
			if stats.Oldest.IsZero() || written.Before(stats.Oldest) {
				stats.Oldest = written
			}
			if written.After(stats.Newest) {
				stats.Newest = written
			}
		}
	}
	return stats, rows.Err()
}

var _ finly.CacheStore = (*Cache)(nil)
