//go:build linux

package roots

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marksweep/internal/machine"
)

// probe lives in the test binary's static-data segment.
var probe uint64 = 0x1122334455667788

// TestDataRegionCoversGlobals verifies that the located data segment
// contains a package-level variable after slide compensation.
func TestDataRegionCoversGlobals(t *testing.T) {
	r, err := DataRegion()
	require.NoError(t, err, "DataRegion should succeed on linux")
	require.NotZero(t, r.Size)

	addr := uintptr(unsafe.Pointer(&probe))
	assert.True(t, r.Contains(addr),
		"data segment %#x+%#x should contain global at %#x", r.Start, r.Size, addr)
}

// TestRegionContainingLocal verifies that the mapping containing a stack
// address is found and readable.
func TestRegionContainingLocal(t *testing.T) {
	var local int
	addr := uintptr(unsafe.Pointer(&local))

	r, err := RegionContaining(addr)
	require.NoError(t, err)
	assert.True(t, r.Contains(addr))
}

// TestRegionContainingUnmapped verifies the not-found error for an
// address no mapping can contain. Page zero is never mapped.
func TestRegionContainingUnmapped(t *testing.T) {
	_, err := RegionContaining(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStackRegionContainsSP verifies that the stack region locator
// returns a range holding the current stack pointer.
func TestStackRegionContainsSP(t *testing.T) {
	sp := machine.StackPointer()
	r, err := StackRegion(sp)
	require.NoError(t, err)
	assert.True(t, r.Contains(sp))
}

// TestParseMapsLine tests the maps line parser against typical rows.
func TestParseMapsLine(t *testing.T) {
	start, end, perms, path, ok := parseMapsLine("00400000-00452000 r-xp 00000000 08:02 173521 /usr/bin/dbus-daemon")
	require.True(t, ok)
	assert.Equal(t, uintptr(0x400000), start)
	assert.Equal(t, uintptr(0x452000), end)
	assert.Equal(t, "r-xp", perms)
	assert.Equal(t, "/usr/bin/dbus-daemon", path)

	_, _, _, path, ok = parseMapsLine("7fff123f0000-7fff12411000 rw-p 00000000 00:00 0 [stack]")
	require.True(t, ok)
	assert.Equal(t, "[stack]", path)

	_, _, _, path, ok = parseMapsLine("00601000-00602000 rw-p 00001000 08:02 10 /tmp/a b (deleted)")
	require.True(t, ok)
	assert.Equal(t, "/tmp/a b (deleted)", path)

	_, _, _, _, ok = parseMapsLine("garbage")
	assert.False(t, ok)
}
