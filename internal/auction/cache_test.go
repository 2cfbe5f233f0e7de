package auction_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func result(id string, n int) *domain.SearchResult {
	res := &domain.SearchResult{ID: id, Term: "elytra"}
	for i := range n {
		res.Listings = append(res.Listings, listing("minecraft:elytra", fmt.Sprintf("s%d", i), int64(i)))
	}
	return res
}

func TestCache_PutGet(t *testing.T) {
	t.Parallel()

	c := auction.NewCache()
	res := result("a", 3)
	require.NoError(t, c.Put(1, res))

	got, ok := c.Get(1, "a")
	require.True(t, ok)
	assert.Same(t, res, got)

	_, ok = c.Get(1, "missing")
	assert.False(t, ok)
}

func TestCache_ScopedPerChat(t *testing.T) {
	t.Parallel()

	c := auction.NewCache()
	require.NoError(t, c.Put(1, result("a", 1)))

	_, ok := c.Get(2, "a")
	assert.False(t, ok)

	require.NoError(t, c.Put(2, result("a", 2)), "same id in another chat is independent")
	got, ok := c.Get(2, "a")
	require.True(t, ok)
	assert.Equal(t, 2, got.Total())
}

func TestCache_DuplicateID(t *testing.T) {
	t.Parallel()

	c := auction.NewCache()
	require.NoError(t, c.Put(1, result("a", 1)))
	assert.ErrorIs(t, c.Put(1, result("a", 5)), auction.ErrDuplicateSearch)

	got, ok := c.Get(1, "a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Total(), "first write wins")
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := auction.NewCache(auction.WithTTL(time.Minute), auction.WithCacheNowFunc(clk.Now))
	require.NoError(t, c.Put(1, result("a", 1)))

	clk.Advance(59 * time.Second)
	_, ok := c.Get(1, "a")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get(1, "a")
	assert.False(t, ok)

	require.NoError(t, c.Put(1, result("a", 2)), "expired id may be reused")
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := auction.NewCache(auction.WithTTL(0), auction.WithCacheNowFunc(clk.Now))
	require.NoError(t, c.Put(1, result("a", 1)))

	clk.Advance(1000 * time.Hour)
	_, ok := c.Get(1, "a")
	assert.True(t, ok)
	assert.Zero(t, c.Sweep())
}

func TestCache_PerChatLimit(t *testing.T) {
	t.Parallel()

	c := auction.NewCache(auction.WithPerChatLimit(2))
	require.NoError(t, c.Put(1, result("a", 1)))
	require.NoError(t, c.Put(1, result("b", 1)))
	require.NoError(t, c.Put(2, result("x", 1)))
	require.NoError(t, c.Put(1, result("c", 1)))

	_, ok := c.Get(1, "a")
	assert.False(t, ok, "oldest entry evicted")
	for _, id := range []string{"b", "c"} {
		_, ok := c.Get(1, id)
		assert.True(t, ok, id)
	}
	_, ok = c.Get(2, "x")
	assert.True(t, ok, "other chats unaffected")
	assert.Equal(t, 3, c.Len())
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := auction.NewCache(auction.WithTTL(10*time.Minute), auction.WithCacheNowFunc(clk.Now))
	require.NoError(t, c.Put(1, result("old", 1)))
	require.NoError(t, c.Put(2, result("old", 1)))

	clk.Advance(5 * time.Minute)
	require.NoError(t, c.Put(1, result("new", 1)))

	clk.Advance(5 * time.Minute)
	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(1, "new")
	assert.True(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := auction.NewCache(auction.WithPerChatLimit(5))

	var wg sync.WaitGroup
	for chat := range int64(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 20 {
				id := fmt.Sprintf("%d-%d", chat, i)
				assert.NoError(t, c.Put(chat, result(id, 1)))
				_, ok := c.Get(chat, id)
				assert.True(t, ok)
				c.Sweep()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*5, c.Len())
}
