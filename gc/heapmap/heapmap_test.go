package heapmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInsertLookup tests basic insertion and exact-base lookup.
func TestInsertLookup(t *testing.T) {
	m := New()
	m.Insert(0x1000, 64)
	m.Insert(0x2000, 128)

	size, ok := m.Lookup(0x1000)
	require.True(t, ok, "base 0x1000 should be tracked")
	assert.Equal(t, 64, size)

	assert.True(t, m.Has(0x2000))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 192, m.Total())
}

// TestInteriorAddressMisses verifies that only exact base addresses match.
// A pointer into the interior of a block has no identity of its own.
func TestInteriorAddressMisses(t *testing.T) {
	m := New()
	m.Insert(0x1000, 64)

	_, ok := m.Lookup(0x1008)
	assert.False(t, ok, "interior address should not resolve to a block")
	assert.False(t, m.Has(0x1000+63))
}

// TestReinsertReplaces verifies that re-inserting a base replaces its size
// without double-counting the byte total.
func TestReinsertReplaces(t *testing.T) {
	m := New()
	m.Insert(0x1000, 64)
	m.Insert(0x1000, 256)

	size, ok := m.Lookup(0x1000)
	require.True(t, ok)
	assert.Equal(t, 256, size)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 256, m.Total())
}

// TestRange tests full iteration and early termination.
func TestRange(t *testing.T) {
	m := New()
	m.Insert(0x1000, 8)
	m.Insert(0x2000, 16)
	m.Insert(0x3000, 32)

	seen := map[uintptr]int{}
	m.Range(func(base uintptr, size int) bool {
		seen[base] = size
		return true
	})
	assert.Equal(t, map[uintptr]int{0x1000: 8, 0x2000: 16, 0x3000: 32}, seen)

	count := 0
	m.Range(func(base uintptr, size int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "Range should stop when fn returns false")
}

// TestEmpty tests zero-value behavior of a fresh map.
func TestEmpty(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Total())
	assert.False(t, m.Has(0))
}
