package cache

import (
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

func newTestCache(ttl time.Duration) (*TTLCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTLCache_GetSet(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set(Items+"list", []string{"Drill"})

	got, ok := Lookup[[]string](c, Items+"list")
	require.True(t, ok)
	assert.Equal(t, []string{"Drill"}, got)

	clock.Advance(59 * time.Second)
	_, ok = c.Get(Items + "list")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get(Items + "list")
	assert.False(t, ok, "entry must expire exactly at its deadline")
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestTTLCache_LookupWrongType(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("boxes:1", 42)

	_, ok := Lookup[string](c, "boxes:1")

	assert.False(t, ok)
}

func TestTTLCache_InvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set(Items+"list", 1)
	c.Set(Items+"7", 2)
	c.Set(Boxes+"list", 3)
	c.Set(Locations+"tree", 4)

	removed := c.InvalidatePrefix(Items, Boxes)

	assert.Equal(t, 3, removed)
	_, ok := c.Get(Locations + "tree")
	assert.True(t, ok)
	_, ok = c.Get(Items + "7")
	assert.False(t, ok)
}

func TestTTLCache_Sweep(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("a", 1)
	clock.Advance(30 * time.Second)
	c.Set("b", 2)
	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestTTLCache_Clear(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(Items+"x", j)
				c.Get(Items + "x")
				c.InvalidatePrefix(Items)
				c.Sweep()
			}
		}()
	}
	wg.Wait()
}
