// Package gc implements a conservative mark-and-sweep memory reclaimer.
// Alloc hands out blocks that never need an explicit free; a collection
// reclaims every block no longer reachable from the program's live state.
//
// # Overview
//
// The collector tracks every block it hands out in a table keyed by base
// address. A collection walks the root set - a snapshot of the
// general-purpose registers, the in-use portion of the stack, and the
// executable's static-data segment - treating every pointer-sized word as
// a potential reference. Any word equal to a tracked base address marks
// that block, and marked blocks are scanned in turn, so reachability is
// transitive through managed memory. Unmarked blocks are swept back to
// the underlying heap.
//
// # Usage Example
//
//	p := gc.Alloc(1024)
//	if p == nil {
//	    // out of memory even after a collection
//	}
//	// use p; never free it
//
// Alloc triggers a collection automatically when an allocation fails and
// retries once. Collect is exposed for tests and diagnostics.
//
// # Debug Controls
//
//   - SetMaxHeap(n): cap total tracked bytes; forces collection pressure
//   - SetVerboseLogging(on): trace mark/sweep activity to stderr
//   - SetOverwriteReclaimedBlocks(on): fill swept blocks with 0xAB
//
// The environment variables MARKSWEEP_VERBOSE and MARKSWEEP_MAX_HEAP set
// the corresponding knobs before first use.
//
// # Thread Safety
//
// The collector is single-threaded and cooperative: exactly one goroutine
// may call into this package, and nothing else may mutate scanned memory
// during a collection. There is no internal locking.
//
// # Limitations
//
//   - Conservative: a non-pointer word matching a block address retains
//     that block.
//   - Base addresses only: a block referenced solely through an interior
//     pointer is invisible to the scanner and will be reclaimed.
//   - Every collection touches the whole root set and the whole live
//     heap; there is no generational or incremental mode.
//
// # Related Packages
//
//   - github.com/joshuapare/marksweep/gc/heapmap: the live-block table
//   - github.com/joshuapare/marksweep/internal/scan: the mark traversal
//   - github.com/joshuapare/marksweep/internal/roots: root discovery
//   - github.com/joshuapare/marksweep/internal/sysheap: backing memory
package gc
