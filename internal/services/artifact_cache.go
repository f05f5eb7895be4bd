package services

import (
	"sync"
	"sync/atomic"
	"time"
)

// ArtifactCache keeps recently downloaded export artifacts in memory so
// repeated downloads skip object storage. Entries expire after a TTL and
// the cache evicts oldest-first once the byte budget is exceeded.
type ArtifactCache struct {
	data        sync.Map // key -> []byte
	meta        sync.Map // key -> time.Time (stored at)
	maxSize     int64
	currentSize int64
	ttl         time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewArtifactCache creates a cache with the given byte budget and TTL.
func NewArtifactCache(maxSize int64, ttl time.Duration) *ArtifactCache {
	return &ArtifactCache{maxSize: maxSize, ttl: ttl}
}

// Get returns the cached artifact bytes, or nil on miss or expiry.
func (c *ArtifactCache) Get(key string) []byte {
	stored, ok := c.meta.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil
	}
	if time.Since(stored.(time.Time)) > c.ttl {
		c.remove(key)
		c.misses.Add(1)
		return nil
	}
	data, ok := c.data.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil
	}
	c.hits.Add(1)
	return data.([]byte)
}

// Put stores artifact bytes, evicting old entries if the budget is blown.
func (c *ArtifactCache) Put(key string, data []byte) {
	if int64(len(data)) > c.maxSize {
		return // never cache something bigger than the whole budget
	}
	if prev, ok := c.data.Load(key); ok {
		atomic.AddInt64(&c.currentSize, -int64(len(prev.([]byte))))
	}
	c.data.Store(key, data)
	c.meta.Store(key, time.Now())
	newSize := atomic.AddInt64(&c.currentSize, int64(len(data)))
	if newSize > c.maxSize {
		c.evictOldest(newSize - c.maxSize)
	}
}

// Invalidate drops a single entry, e.g. after the artifact is deleted.
func (c *ArtifactCache) Invalidate(key string) {
	c.remove(key)
}

// Stats returns hit/miss counters.
func (c *ArtifactCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ArtifactCache) remove(key string) {
	if prev, ok := c.data.LoadAndDelete(key); ok {
		atomic.AddInt64(&c.currentSize, -int64(len(prev.([]byte))))
	}
	c.meta.Delete(key)
}

func (c *ArtifactCache) evictOldest(excess int64) {
	type entry struct {
		key    string
		stored time.Time
	}
	var entries []entry
	c.meta.Range(func(k, v interface{}) bool {
		entries = append(entries, entry{key: k.(string), stored: v.(time.Time)})
		return true
	})

	// Oldest first until enough bytes are freed.
	for excess > 0 && len(entries) > 0 {
		oldest := 0
		for i := range entries {
			if entries[i].stored.Before(entries[oldest].stored) {
				oldest = i
			}
		}
		if data, ok := c.data.Load(entries[oldest].key); ok {
			excess -= int64(len(data.([]byte)))
		}
		c.remove(entries[oldest].key)
		entries = append(entries[:oldest], entries[oldest+1:]...)
	}
}
