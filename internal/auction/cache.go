package auction

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/donaldgifford/donutsmp-bot/internal/metrics"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// Cache defaults.
const (
	DefaultCacheTTL     = 30 * time.Minute
	DefaultCachePerChat = 20
)

// ErrDuplicateSearch is returned by Put when the chat already holds a live
// entry under the same search id.
var ErrDuplicateSearch = errors.New("search id already cached")

// Cache holds completed search results, scoped per chat. Entries are
// write-once: there is no update or delete. Each entry expires ttl after it
// was stored, and a chat keeps at most perChat entries, evicting its oldest
// entry first. A zero ttl or perChat disables that bound.
type Cache struct {
	mu      sync.Mutex
	chats   map[int64]*chatCache
	ttl     time.Duration
	perChat int
	nowFunc func() time.Time
}

type chatCache struct {
	order   []string // insertion order, oldest first
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    *domain.SearchResult
	expiresAt time.Time
}

// CacheOption configures the Cache.
type CacheOption func(*Cache)

// WithTTL sets how long an entry stays readable.
func WithTTL(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithPerChatLimit sets how many entries a single chat may hold.
func WithPerChatLimit(n int) CacheOption {
	return func(c *Cache) {
		c.perChat = n
	}
}

// WithCacheNowFunc overrides the time function for testing.
func WithCacheNowFunc(f func() time.Time) CacheOption {
	return func(c *Cache) {
		c.nowFunc = f
	}
}

// NewCache creates an empty Cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		chats:   make(map[int64]*chatCache),
		ttl:     DefaultCacheTTL,
		perChat: DefaultCachePerChat,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores result under its ID within chatID's scope.
func (c *Cache) Put(chatID int64, result *domain.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	cc, ok := c.chats[chatID]
	if !ok {
		cc = &chatCache{entries: make(map[string]cacheEntry)}
		c.chats[chatID] = cc
	}

	c.dropExpired(cc, now)

	if _, exists := cc.entries[result.ID]; exists {
		return ErrDuplicateSearch
	}

	for c.perChat > 0 && len(cc.order) >= c.perChat {
		oldest := cc.order[0]
		cc.order = cc.order[1:]
		delete(cc.entries, oldest)
		metrics.CacheEvictionsTotal.WithLabelValues("capacity").Inc()
	}

	entry := cacheEntry{result: result}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}
	cc.entries[result.ID] = entry
	cc.order = append(cc.order, result.ID)

	c.updateGauge()
	return nil
}

// Get returns the live entry for searchID in chatID's scope.
func (c *Cache) Get(chatID int64, searchID string) (*domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cc, ok := c.chats[chatID]
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	entry, ok := cc.entries[searchID]
	if !ok || entry.expired(c.nowFunc()) {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return entry.result, true
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	removed := 0
	for chatID, cc := range c.chats {
		removed += c.dropExpired(cc, now)
		if len(cc.entries) == 0 {
			delete(c.chats, chatID)
		}
	}

	c.updateGauge()
	return removed
}

// Len returns the number of entries held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lenLocked()
}

func (c *Cache) lenLocked() int {
	n := 0
	for _, cc := range c.chats {
		n += len(cc.entries)
	}
	return n
}

func (c *Cache) updateGauge() {
	metrics.CacheEntries.Set(float64(c.lenLocked()))
}

// dropExpired must be called with c.mu held.
func (c *Cache) dropExpired(cc *chatCache, now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}

	removed := 0
	cc.order = slices.DeleteFunc(cc.order, func(id string) bool {
		if cc.entries[id].expired(now) {
			delete(cc.entries, id)
			removed++
			return true
		}
		return false
	})

	if removed > 0 {
		metrics.CacheEvictionsTotal.WithLabelValues("expired").Add(float64(removed))
	}
	return removed
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
