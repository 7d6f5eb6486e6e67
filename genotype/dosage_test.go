package genotype

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		dosage float64
		ok     bool
	}{
		{"0|0", 0, true},
		{"1|0", 0.5, true},
		{"0|1", 0.5, true},
		{"1/1", 1, true},
		{"0/1/1", 2.0 / 3.0, true},
		{"2|1", 1, true},
		{"1", 1, true},
		{"0", 0, true},
		{"0|1:35:0,2", 0.5, true},
		{"1/0:.", 0.5, true},
		{"./.", 1, true},
		{"", 0, false},
		{":35", 0, false},
	} {
		t.Run(fmt.Sprintf("%q", tc.raw), func(t *testing.T) {
			dosage, ok := Decode(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.dosage, dosage, 1e-12)
		})
	}
}

func TestCacheHits(t *testing.T) {
	c := NewCache()

	first := c.Dosage("0/1/1")
	hits, misses := c.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)

	second := c.Dosage("0/1/1")
	hits, misses = c.Stats()
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	// Undecodable text is cached too
	d, ok := c.Decode("")
	assert.False(t, ok)
	assert.Equal(t, 0.0, d)
	_, ok = c.Decode("")
	assert.False(t, ok)

	hits, misses = c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, 2, c.Len())
}

func TestCacheKeyIsCopied(t *testing.T) {
	c := NewCache()

	line := "0|1\t1|1\t0|0"
	raw := line[:3]
	c.Dosage(raw)

	require.Equal(t, 1, c.Len())
	for k := range c.entries {
		assert.Equal(t, "0|1", k)
		// The key must not share the line's bytes
		assert.NotSame(t, unsafe.StringData(line), unsafe.StringData(k))
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache()
	raws := []string{"0|0", "0|1", "1|1", "1/0", "0/0/1"}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				raw := raws[i%len(raws)]
				want, _ := Decode(raw)
				if got := c.Dosage(raw); got != want {
					t.Errorf("%q: got %v, want %v", raw, got, want)
					return
				}
			}
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	assert.Equal(t, uint64(8000), hits+misses)
	assert.Equal(t, len(raws), c.Len())
}
