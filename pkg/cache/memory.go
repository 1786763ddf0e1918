package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type memoryEntry struct {
	key       string
	value     any
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-memory LRU cache with TTL support. Expired entries are
// dropped when they are read and, if a cleanup interval is set, by a
// background sweep.
type MemoryCache struct {
	mu         sync.Mutex
	index      map[string]*list.Element
	order      *list.List // front is least recently used
	maxSize    int
	defaultTTL time.Duration
	interval   time.Duration
	now        func() time.Time

	stop     chan struct{}
	stopOnce sync.Once

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// MemoryCacheOption is a functional option for MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithMaxSize sets the maximum number of entries. 0 means unbounded.
func WithMaxSize(size int) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.maxSize = size
	}
}

// WithDefaultTTL sets the TTL used when Set is called with a zero TTL.
// A negative TTL keeps entries until they are evicted.
func WithDefaultTTL(ttl time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.defaultTTL = ttl
	}
}

// WithCleanupInterval starts a background sweep of expired entries.
func WithCleanupInterval(interval time.Duration) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.interval = interval
	}
}

func withClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		index:      make(map[string]*list.Element),
		order:      list.New(),
		maxSize:    10000,
		defaultTTL: time.Hour,
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.interval > 0 {
		go c.sweepLoop()
	}

	return c
}

func (c *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*memoryEntry).expired(now) {
			c.removeLocked(elem)
		}
		elem = next
	}
}

func (c *MemoryCache) removeLocked(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.index, elem.Value.(*memoryEntry).key)
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		c.misses.Add(1)
		return nil, nil
	}

	e := elem.Value.(*memoryEntry)
	if e.expired(c.now()) {
		c.removeLocked(elem)
		c.misses.Add(1)
		return nil, nil
	}

	c.order.MoveToBack(elem)
	c.hits.Add(1)
	return e.value, nil
}

// Set stores a value in the cache, evicting the least recently used entry when full.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if elem, ok := c.index[key]; ok {
		e := elem.Value.(*memoryEntry)
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToBack(elem)
		return nil
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.removeLocked(c.order.Front())
		c.evictions.Add(1)
	}

	c.index[key] = c.order.PushBack(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return false, nil
	}
	c.removeLocked(elem)
	return true, nil
}

// Clear removes all entries from the cache. Statistics are kept.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// Close stops the background sweep and clears the cache. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	return c.Clear(context.Background())
}

// Len returns the current number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats(_ context.Context) (Stats, error) {
	return Stats{
		Size:      c.Len(),
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}, nil
}
