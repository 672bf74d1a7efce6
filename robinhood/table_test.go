package robinhood

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies the displacement bookkeeping of every live entry:
// the tracked distance matches the actual offset from the home slot and stays
// below the probe bound.
func checkInvariants[V any](t *testing.T, tab *Table[V]) {
	t.Helper()

	count := 0

	for i, e := range tab.buckets {
		if e == nil {
			continue
		}

		count++

		home := tab.home(e.hash)
		require.Equal(t, i-home, int(e.dist), "entry %q: distance out of sync", e.key)
		require.Less(t, e.dist, tab.shift, "entry %q: displaced past the probe bound", e.key)
	}

	require.Equal(t, tab.count, count, "live count out of sync")
}

func TestTable(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tab := New[int]()

		assert.Equal(t, 0, tab.Len())

		_, ok := tab.Get("key1")
		assert.False(t, ok)

		assert.False(t, tab.Delete("key1"))
		assert.Equal(t, 0, tab.Len())
	})

	t.Run("SetGetDelete", func(t *testing.T) {
		tab := New[string]()

		require.NoError(t, tab.Set("key1", "A"))
		require.NoError(t, tab.Set("key2", "B"))

		v, ok := tab.Get("key1")
		require.True(t, ok)
		assert.Equal(t, "A", v)

		v, ok = tab.Get("key2")
		require.True(t, ok)
		assert.Equal(t, "B", v)

		require.True(t, tab.Delete("key1"))

		_, ok = tab.Get("key1")
		assert.False(t, ok)
		assert.Equal(t, 1, tab.Len())

		require.True(t, tab.Delete("key2"))
		assert.Equal(t, 0, tab.Len())
	})

	t.Run("Replace", func(t *testing.T) {
		tab := New[string]()

		require.NoError(t, tab.Set("key1", "A"))
		require.NoError(t, tab.Set("key1", "B"))

		v, ok := tab.Get("key1")
		require.True(t, ok)
		assert.Equal(t, "B", v)
		assert.Equal(t, 1, tab.Len())
	})

	t.Run("DeleteAbsent", func(t *testing.T) {
		tab := New[int]()

		require.NoError(t, tab.Set("key1", 1))

		assert.False(t, tab.Delete("key2"))
		assert.Equal(t, 1, tab.Len())
	})

	t.Run("AddRemoveAll", func(t *testing.T) {
		tab := New[int]()

		for i := 0; i < 100; i++ {
			require.NoError(t, tab.Set(fmt.Sprintf("key-%d", i), i))
		}
		require.Equal(t, 100, tab.Len())
		checkInvariants(t, tab)

		for i := 0; i < 100; i++ {
			require.True(t, tab.Delete(fmt.Sprintf("key-%d", i)))
		}
		require.Equal(t, 0, tab.Len())

		for i := 0; i < 100; i++ {
			_, ok := tab.Get(fmt.Sprintf("key-%d", i))
			require.False(t, ok)
		}
	})

	t.Run("NilValue", func(t *testing.T) {
		tab := New[*int]()

		require.NoError(t, tab.Set("key1", nil))

		v, ok := tab.Get("key1")
		require.True(t, ok)
		assert.Nil(t, v)
		assert.Equal(t, 1, tab.Len())
	})

	t.Run("EmptyKey", func(t *testing.T) {
		tab := New[int]()

		require.NoError(t, tab.Set("", 7))

		v, ok := tab.Get("")
		require.True(t, ok)
		assert.Equal(t, 7, v)
	})

	t.Run("XXHashHasher", func(t *testing.T) {
		tab := New[int](func(o *Options) {
			o.Hasher = XXHash
		})

		for i := 0; i < 200; i++ {
			require.NoError(t, tab.Set(fmt.Sprintf("key-%d", i), i))
		}
		checkInvariants(t, tab)

		for i := 0; i < 200; i++ {
			v, ok := tab.Get(fmt.Sprintf("key-%d", i))
			require.True(t, ok)
			require.Equal(t, i, v)
		}
	})

	t.Run("NilHasherFallsBack", func(t *testing.T) {
		tab := New[int](func(o *Options) {
			o.Hasher = nil
		})

		require.NoError(t, tab.Set("key1", 1))

		v, ok := tab.Get("key1")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})
}

func TestClose(t *testing.T) {
	t.Run("VisitsSurvivingValues", func(t *testing.T) {
		tab := New[int]()

		for i := 0; i < 10; i++ {
			require.NoError(t, tab.Set(fmt.Sprintf("key-%d", i), i))
		}
		require.True(t, tab.Delete("key-3"))

		seen := make(map[int]int)
		tab.Close(func(value int) {
			seen[value]++
		})

		assert.Len(t, seen, 9)
		for v, n := range seen {
			assert.Equal(t, 1, n, "value %d visited more than once", v)
			assert.NotEqual(t, 3, v)
		}
	})

	t.Run("NilVisit", func(t *testing.T) {
		tab := New[int]()

		require.NoError(t, tab.Set("key1", 1))

		tab.Close(nil)
		assert.Equal(t, 0, tab.Len())
	})
}

func TestGrowKeepsEntries(t *testing.T) {
	const n = 5000

	tab := New[int]()

	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%05d", i)
	}

	for i := 0; i < n; i++ {
		require.NoError(t, tab.Set(keys[i], i))
		require.Equal(t, i+1, tab.Len())

		// Every previously added key must still resolve to its value.
		// Plain comparisons keep the quadratic sweep cheap.
		for j := 0; j <= i; j++ {
			if v, ok := tab.Get(keys[j]); !ok || v != j {
				t.Fatalf("%s lost or corrupted after adding %s: got %d, %t", keys[j], keys[i], v, ok)
			}
		}
	}

	checkInvariants(t, tab)
}

func TestShrinkKeepsEntries(t *testing.T) {
	const n = 5000

	tab := New[int]()

	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%05d", i)
	}

	for i, key := range keys {
		require.NoError(t, tab.Set(key, i))
	}

	for i, key := range keys {
		require.True(t, tab.Delete(key))
		require.Equal(t, n-i-1, tab.Len())

		// Every remaining key must still resolve to its value.
		for j := i + 1; j < n; j++ {
			if v, ok := tab.Get(keys[j]); !ok || v != j {
				t.Fatalf("%s lost or corrupted after removing %s: got %d, %t", keys[j], key, v, ok)
			}
		}
	}

	st := tab.Stats()
	assert.Equal(t, 0, st.Count)
	assert.Equal(t, 1<<initialShift, st.BucketCount)
}

func TestStats(t *testing.T) {
	// Pin every key to its own home slot so the table shape is exact.
	hashes := map[string]uint64{}
	for i := 0; i < 10; i++ {
		hashes[fmt.Sprintf("key-%d", i)] = hashForHome(t, i)
	}

	tab := New[int](func(o *Options) {
		o.Hasher = mapHasher(hashes)
	})

	st := tab.Stats()
	assert.Equal(t, 0, st.Count)
	assert.Equal(t, 16, st.BucketCount)
	assert.Equal(t, uint8(4), st.Shift)
	assert.Zero(t, st.LoadFactor)
	assert.Zero(t, st.MaxProbe)

	for i := 0; i < 10; i++ {
		require.NoError(t, tab.Set(fmt.Sprintf("key-%d", i), i))
	}

	st = tab.Stats()
	assert.Equal(t, 10, st.Count)
	assert.Equal(t, 16, st.BucketCount)
	assert.InDelta(t, 0.625, st.LoadFactor, 1e-9)
	assert.Zero(t, st.MaxProbe)
}
