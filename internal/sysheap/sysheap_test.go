package sysheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocZeroed verifies that every allocation starts zeroed, including
// blocks reused from a free list after a dirty owner.
func TestAllocZeroed(t *testing.T) {
	h := New()

	addr, err := h.Alloc(128)
	require.NoError(t, err)
	require.NotZero(t, addr)

	b := span(addr, 128)
	for i, v := range b {
		require.Zero(t, v, "fresh block should be zero at byte %d", i)
	}

	// Dirty it, free it, and allocate the same class again.
	for i := range b {
		b[i] = 0xFF
	}
	require.NoError(t, h.Free(addr, 128))

	again, err := h.Alloc(100) // same class (128)
	require.NoError(t, err)
	assert.Equal(t, addr, again, "free list should hand the block back LIFO")
	for i, v := range span(again, 100) {
		require.Zero(t, v, "reused block should be scrubbed at byte %d", i)
	}
}

// TestFreePreservesContents verifies that Free itself leaves the block's
// bytes alone; the collector's sentinel overwrite must stay inspectable
// after reclamation.
func TestFreePreservesContents(t *testing.T) {
	h := New()

	addr, err := h.Alloc(64)
	require.NoError(t, err)
	b := span(addr, 64)
	for i := range b {
		b[i] = 0xAB
	}

	require.NoError(t, h.Free(addr, 64))
	for i, v := range b {
		require.Equal(t, byte(0xAB), v, "byte %d should survive Free", i)
	}
}

// TestAlignment verifies 8-byte alignment across request sizes.
func TestAlignment(t *testing.T) {
	h := New()
	for _, n := range []int{1, 5, 31, 32, 33, 100, 1000, 4097, 16384} {
		addr, err := h.Alloc(n)
		require.NoError(t, err, "Alloc(%d)", n)
		assert.Zero(t, addr%8, "Alloc(%d) returned unaligned %#x", n, addr)
	}
}

// TestClassFor tests the size-class table lookups.
func TestClassFor(t *testing.T) {
	assert.Equal(t, 0, classFor(1))
	assert.Equal(t, 0, classFor(32))
	assert.Equal(t, 1, classFor(33))
	assert.Equal(t, 5, classFor(1024))
	assert.Equal(t, 9, classFor(16384))
	assert.Equal(t, -1, classFor(16385))

	assert.Equal(t, -1, largestClassWithin(31))
	assert.Equal(t, 0, largestClassWithin(63))
	assert.Equal(t, 9, largestClassWithin(1<<20))
}

// TestLargeAllocation verifies the dedicated-mapping path above the
// largest class.
func TestLargeAllocation(t *testing.T) {
	h := New()

	n := 64 << 10
	addr, err := h.Alloc(n)
	require.NoError(t, err)

	b := span(addr, n)
	b[0] = 0x11
	b[n-1] = 0x22
	assert.Equal(t, byte(0x11), b[0])
	assert.Equal(t, byte(0x22), b[n-1])

	st := h.Stats()
	assert.Equal(t, 1, st.LargeMapped)

	require.NoError(t, h.Free(addr, n))
	assert.Equal(t, 0, h.Stats().LargeMapped)
}

// TestArenaGrowth verifies that exhausting an arena maps another and that
// the old arena's tail is not stranded.
func TestArenaGrowth(t *testing.T) {
	h := New()

	// 16KB blocks: 16 fill one 64-page arena exactly.
	for i := 0; i < 40; i++ {
		_, err := h.Alloc(16384)
		require.NoError(t, err, "allocation %d", i)
	}
	st := h.Stats()
	assert.GreaterOrEqual(t, st.Grows, 2, "should have mapped more than one arena")
	assert.Equal(t, st.Grows*arenaSize, st.ArenaBytes)
}

// TestDistinctAddresses verifies that live blocks never overlap.
func TestDistinctAddresses(t *testing.T) {
	h := New()

	seen := map[uintptr]bool{}
	for i := 0; i < 1000; i++ {
		addr, err := h.Alloc(48)
		require.NoError(t, err)
		require.False(t, seen[addr], "address %#x handed out twice", addr)
		seen[addr] = true
	}
}

// TestBadRequests tests the error surface.
func TestBadRequests(t *testing.T) {
	h := New()

	_, err := h.Alloc(0)
	assert.ErrorIs(t, err, ErrBadSize)

	_, err = h.Alloc(-5)
	assert.ErrorIs(t, err, ErrBadSize)

	err = h.Free(0, 64)
	assert.ErrorIs(t, err, ErrBadFree)
}
