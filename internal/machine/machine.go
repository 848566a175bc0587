// Package machine provides the architecture-specific primitives the
// collector builds on: the current stack pointer, the bounds of the
// running stack, and a snapshot of the general-purpose registers.
//
// Everything above this package is platform-agnostic; a new architecture
// only needs a machine_GOARCH.go constants file and the matching assembly
// stubs.
package machine
