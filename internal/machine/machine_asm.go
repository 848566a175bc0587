//go:build amd64 || arm64

package machine

// StackPointer returns the current value of the stack pointer.
//
// The value is the stub's own SP, which is strictly below every caller
// frame. Stacks grow toward lower addresses, so scanning from this value
// up to the stack top covers all live frames of the caller.
func StackPointer() uintptr

// CaptureRegisters stores the current value of every general-purpose
// register into buf. The stores force register contents out to memory, so
// a reference the compiler kept purely in a register becomes visible to a
// memory scan of buf.
//
//go:noescape
func CaptureRegisters(buf *[NumRegisters]uintptr)

// gstack returns the stack bounds recorded in the runtime's goroutine
// descriptor. The stack field is the first field of the descriptor and
// holds [lo, hi) as two machine words.
func gstack() (lo, hi uintptr)

// StackBounds reports the [lo, hi) bounds of the running stack, when the
// runtime exposes them. Goroutine stacks can move between collections, so
// callers must not cache the result across blocking operations.
func StackBounds() (lo, hi uintptr, ok bool) {
	lo, hi = gstack()
	if lo == 0 || hi <= lo {
		return 0, 0, false
	}
	return lo, hi, true
}
