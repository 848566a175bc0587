package gc

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unsafe"
)

var (
	initOnce sync.Once
	def      *Collector
)

// collector returns the process-wide collector, establishing the root set
// on first use. Discovery failure is unrecoverable: without a trustworthy
// root set every block would look unreachable and a collection would
// reclaim live memory, so the process exits instead.
func collector() *Collector {
	initOnce.Do(func() {
		c, err := newCollector()
		if err != nil {
			fatalRootSet(err)
		}
		def = c
	})
	return def
}

// fatalRootSet aborts the process over a root-set discovery failure.
func fatalRootSet(err error) {
	fmt.Fprintf(os.Stderr, "gc: cannot establish root set: %v\n", err)
	os.Exit(1)
}

// Alloc returns size zero-initialized bytes of managed memory, or nil if
// the memory cannot be had even after a collection. The block never needs
// an explicit free; it stays valid exactly as long as some root or some
// live block holds its base address.
func Alloc(size int) unsafe.Pointer {
	return collector().Alloc(size)
}

// Collect runs one synchronous mark-and-sweep cycle. Alloc triggers
// collections on its own; Collect exists for tests and diagnostics.
func Collect() {
	collector().Collect()
}

// SetMaxHeap caps total tracked bytes at n; 0 removes the cap. An
// allocation that would exceed the cap fails without touching the
// underlying heap, which makes Alloc collect and retry. Intended for
// forcing collection pressure in tests.
func SetMaxHeap(n int) {
	collector().SetMaxHeap(n)
}

// SetVerboseLogging toggles mark/sweep tracing to stderr.
func SetVerboseLogging(on bool) {
	collector().SetVerboseLogging(on)
}

// SetOverwriteReclaimedBlocks toggles filling swept blocks with the 0xAB
// sentinel, which makes unexpected reclamation visible to tests.
func SetOverwriteReclaimedBlocks(on bool) {
	collector().SetOverwriteReclaimedBlocks(on)
}

// ReadStats returns a snapshot of the collector's counters.
func ReadStats() Stats {
	return collector().Stats()
}

// WriteSnapshot writes a CBOR-encoded dump of the tracked heap and root
// bounds to w, for offline inspection.
func WriteSnapshot(w io.Writer) error {
	return collector().writeSnapshot(w)
}
