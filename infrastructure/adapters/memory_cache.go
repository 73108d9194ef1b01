package adapters

import (
	"sync"
	"time"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
)

type cacheEntry struct {
	value  []byte
	expiry time.Time
}

// MemoryCache is a bounded, TTL-based audio cache. Insertion order drives
// eviction: a put into a full store drops the oldest entry first. Expired
// entries are removed lazily on read and by a best-effort scheduled sweep;
// neither is load-bearing for correctness on its own.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	order      []string
	ttl        time.Duration
	maxSize    int
	dispatcher outbound.TaskDispatcher
	logger     outbound.LoggerPort
	now        func() time.Time
}

func NewMemoryCache(cfg *config.CacheConfig, dispatcher outbound.TaskDispatcher, logger outbound.LoggerPort) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]cacheEntry),
		ttl:        cfg.TTL,
		maxSize:    cfg.MaxSize,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !entry.expiry.After(c.now()) {
		c.remove(key)

		return nil, false
	}

	return entry.value, true
}

func (c *MemoryCache) Put(key string, audio []byte) {
	c.mu.Lock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize && len(c.order) > 0 {
			c.remove(c.order[0])
		}

		c.order = append(c.order, key)
	}

	c.entries[key] = cacheEntry{
		value:  audio,
		expiry: c.now().Add(c.ttl),
	}

	c.mu.Unlock()

	c.scheduleSweep(key)
}

// Len reports the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// scheduleSweep removes the entry shortly after its TTL elapses so idle
// entries do not pin memory until the next read.
func (c *MemoryCache) scheduleSweep(key string) {
	time.AfterFunc(c.ttl+time.Second, func() {
		err := c.dispatcher.Submit(func() {
			c.expireIfDue(key)
		})
		if err != nil {
			c.logger.Error(err, "failed to schedule cache sweep")
		}
	})
}

func (c *MemoryCache) expireIfDue(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && !entry.expiry.After(c.now()) {
		c.remove(key)
	}
}

// remove must be called with the lock held.
func (c *MemoryCache) remove(key string) {
	delete(c.entries, key)

	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}
}
