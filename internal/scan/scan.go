// Package scan implements the conservative mark traversal. It treats
// memory as a sequence of pointer-sized words and follows any word whose
// value is the base address of a tracked block. No type information
// exists anywhere in the system, so a word that merely happens to equal a
// block address counts as a reference; that over-approximation is the
// price of conservatism. Only exact base addresses match - a pointer into
// the interior of a block is invisible.
package scan

import (
	"unsafe"

	"github.com/joshuapare/marksweep/gc/heapmap"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

type block struct {
	base uintptr
	size uintptr
}

// Scanner marks every tracked block transitively reachable from the
// regions it is given.
type Scanner struct {
	live   *heapmap.Map // the allocation table; the pointer-validity oracle
	marked *heapmap.Map // blocks proven reachable so far

	// Newly marked blocks are queued here instead of being scanned with
	// native recursion, so a deep reference chain cannot grow the call
	// stack.
	work []block
}

// New returns a scanner that consults live for pointer validity and
// accumulates reachable blocks into marked.
func New(live, marked *heapmap.Map) *Scanner {
	return &Scanner{live: live, marked: marked}
}

// Region scans a root region and everything transitively reachable from
// it. A block already in the mark set is never re-entered, which bounds
// the traversal even over cyclic reference graphs.
func (s *Scanner) Region(start, size uintptr) {
	s.scanWords(start, size)
	s.drain()
}

// scanWords visits each pointer-aligned word in [start, start+size) and
// marks any tracked block a word refers to.
func (s *Scanner) scanWords(start, size uintptr) {
	end := start + size
	for p := (start + ptrSize - 1) &^ (ptrSize - 1); p+ptrSize <= end; p += ptrSize {
		v := *(*uintptr)(unsafe.Pointer(p))
		n, ok := s.live.Lookup(v)
		if !ok || s.marked.Has(v) {
			continue
		}
		s.marked.Insert(v, n)
		s.work = append(s.work, block{base: v, size: uintptr(n)})
	}
}

// drain scans queued block extents until no pending work remains.
func (s *Scanner) drain() {
	for len(s.work) > 0 {
		b := s.work[len(s.work)-1]
		s.work = s.work[:len(s.work)-1]
		s.scanWords(b.base, b.size)
	}
}
