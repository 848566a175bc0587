//go:build !unix

package sysheap

// Without mmap, backing memory comes from ordinary Go allocations that
// the Heap pins in its arenas and large tables. Handing their addresses
// around as raw words is only sound while the runtime never moves heap
// objects, which this import asserts at build time.
import _ "go4.org/unsafe/assume-no-moving-gc"

// mapAnon returns n bytes of zeroed memory from the Go heap, pinned by
// the caller for the life of the mapping.
func mapAnon(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// unmapMem drops the mapping; the memory is reclaimed once the caller
// releases its pin.
func unmapMem(b []byte) error {
	return nil
}
