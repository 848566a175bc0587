// Package sysheap is the underlying allocator the collector's tracker
// draws from. It hands out zero-initialized blocks whose addresses are
// stable for the life of the block and invisible to the Go runtime's own
// collector, which is what makes conservative address-matching sound.
//
// # Design
//
// Memory comes from anonymous page mappings, carved up with segregated
// free lists:
//
//   - 10 power-of-two size classes, 32 bytes to 16KB
//   - O(1) allocation and deallocation within a class
//   - requests above the largest class get a dedicated mapping,
//     released back to the system on free
//
// Class-sized blocks return to their free list on Free with contents
// intact; the bytes are cleared when the block is handed out again. A
// reclaimed block therefore stays readable, which the collector's
// overwrite-on-reclaim debugging aid depends on.
//
// # Thread Safety
//
// A Heap is not thread-safe. The collector is single-threaded by
// contract and callers must not introduce concurrency around it.
package sysheap
