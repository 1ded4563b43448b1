package memcache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/hark/internal/ports"
)

func cmd(action string) ports.Command {
	return ports.Command{
		Intent:     ports.IntentFileOperations,
		Action:     action,
		Confidence: 0.95,
		Canonical:  "file_operations." + action,
	}
}

func TestCache_LookupMiss(t *testing.T) {
	c := New(4)
	_, ok := c.Lookup("open file test.py")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_InsertAndLookup(t *testing.T) {
	c := New(4)
	c.Insert("open file test.py", cmd("open"))

	got, ok := c.Lookup("open file test.py")
	require.True(t, ok)
	assert.Equal(t, "open", got.Action)
	assert.Equal(t, 1, c.Len())
}

func TestCache_EvictsLeastRecentlyInserted(t *testing.T) {
	c := New(2)
	c.Insert("a", cmd("open"))
	c.Insert("b", cmd("create"))
	c.Insert("c", cmd("delete"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Lookup("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Lookup("b")
	assert.True(t, ok)
	_, ok = c.Lookup("c")
	assert.True(t, ok)
}

func TestCache_ReinsertRefreshesPosition(t *testing.T) {
	c := New(2)
	c.Insert("a", cmd("open"))
	c.Insert("b", cmd("create"))
	c.Insert("a", cmd("delete")) // refresh: "a" is now newest
	c.Insert("c", cmd("list"))

	_, ok := c.Lookup("b")
	assert.False(t, ok, "b became the oldest after a's refresh")
	got, ok := c.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "delete", got.Action, "last write wins")
}

func TestCache_Purge(t *testing.T) {
	c := New(4)
	c.Insert("a", cmd("open"))
	c.Insert("b", cmd("create"))
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Lookup("a")
	assert.False(t, ok)

	// Still usable after purge.
	c.Insert("c", cmd("delete"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_MinimumCapacity(t *testing.T) {
	c := New(0)
	c.Insert("a", cmd("open"))
	c.Insert("b", cmd("create"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Close(t *testing.T) {
	c := New(4)
	assert.NoError(t, c.Close())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i%10)
				c.Insert(key, cmd("open"))
				c.Lookup(key)
				c.Len()
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
