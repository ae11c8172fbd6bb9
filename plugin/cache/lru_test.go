package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 11, 12, 14, 18, 0, 0, time.UTC)}
}

func TestLRU_SetAndGet(t *testing.T) {
	c := New[string, int](10, time.Hour)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction victim.
	_, _ = c.Get("a")
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_TTL(t *testing.T) {
	clk := newClock()
	c := New[string, string](10, time.Minute, WithClock(clk.Now))

	c.Set("k", "v")
	clk.Advance(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clk.Advance(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_CleanupExpired(t *testing.T) {
	clk := newClock()
	c := New[int, int](10, time.Minute, WithClock(clk.Now))
	c.Set(1, 1)
	c.Set(2, 2)
	clk.Advance(2 * time.Minute)
	c.Set(3, 3)

	assert.Equal(t, 2, c.CleanupExpired())
	assert.Equal(t, 1, c.Len())
}

func TestLRU_DeleteAndClear(t *testing.T) {
	c := New[string, int](10, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestLRU_StructKeys(t *testing.T) {
	type key struct {
		text   string
		minute int64
	}
	c := New[key, string](10, time.Hour)
	c.Set(key{"明天", 1}, "2025-11-13")

	v, ok := c.Get(key{"明天", 1})
	require.True(t, ok)
	assert.Equal(t, "2025-11-13", v)

	_, ok = c.Get(key{"明天", 2})
	assert.False(t, ok)
}

func TestLRU_RunCleanupStops(t *testing.T) {
	c := New[string, int](10, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.RunCleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop")
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := New[int, int](50, time.Hour)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(i%100, w)
				c.Get(i % 100)
			}
		}(w)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
