// Package roots discovers the root regions the collector scans: the
// in-use portion of the running stack and the writable static-data
// segment of the executable.
//
// Discovery failure is not survivable for a collector. Without a
// trustworthy root set every managed block looks unreachable, so callers
// treat any error from this package as fatal.
package roots

import "github.com/joshuapare/marksweep/internal/machine"

// Region is a contiguous span of addressable memory scanned word-by-word
// during the mark phase.
type Region struct {
	Start uintptr
	Size  uintptr
}

// End returns the first address past the region.
func (r Region) End() uintptr {
	return r.Start + r.Size
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.Start && addr < r.End()
}

// StackRegion returns the bounds of the stack containing sp.
//
// The runtime knows the exact bounds of the current stack, so those are
// preferred. When they are unavailable (no stub for this architecture)
// the platform is asked for the memory mapping containing sp, which is a
// superset of the stack and therefore safe to over-scan.
func StackRegion(sp uintptr) (Region, error) {
	if lo, hi, ok := machine.StackBounds(); ok && sp >= lo && sp < hi {
		return Region{Start: lo, Size: hi - lo}, nil
	}
	return RegionContaining(sp)
}
