//go:build !amd64 && !arm64

package machine

import "unsafe"

// NumRegisters is 1 on architectures without a register capture stub; the
// single slot is always zero. Root scanning degrades to stack and static
// data only.
const NumRegisters = 1

// StackPointer approximates the stack pointer with the address of a local
// variable. The approximation is above the true SP, which only narrows
// the scanned extent.
func StackPointer() uintptr {
	var local byte
	return uintptr(unsafe.Pointer(&local))
}

// CaptureRegisters is a no-op without an assembly stub.
func CaptureRegisters(buf *[NumRegisters]uintptr) {
	buf[0] = 0
}

// StackBounds reports that runtime stack bounds are unavailable; callers
// fall back to querying the platform for the mapping containing SP.
func StackBounds() (lo, hi uintptr, ok bool) {
	return 0, 0, false
}
