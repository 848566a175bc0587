package sysheap

import (
	"fmt"
	"unsafe"
)

const (
	pageSize = 4096

	// arenaSize is how much address space each growth step maps: 64
	// pages. Large enough to amortize the map call, small enough that a
	// capped debug heap still forces frequent reuse.
	arenaSize = 64 * pageSize
)

// Heap hands out zero-initialized blocks of non-Go memory.
type Heap struct {
	// Segregated free lists, one per size class, LIFO.
	free [numClasses][]uintptr

	// Bump pointer into the active arena; [cur, curEnd) is unallocated.
	cur    uintptr
	curEnd uintptr

	// arenas pins every mapping so fallback implementations can rely on
	// the slices staying live.
	arenas [][]byte

	// large maps block base to its dedicated mapping.
	large map[uintptr][]byte

	stats Stats
}

// Stats holds internal heap counters for testing and instrumentation.
type Stats struct {
	Grows       int // arena mappings created
	ArenaBytes  int // total bytes in arena mappings
	LargeMapped int // dedicated mappings currently live
	LargeBytes  int // total bytes in live dedicated mappings
}

// New returns an empty heap. No memory is mapped until the first Alloc.
func New() *Heap {
	return &Heap{large: make(map[uintptr][]byte)}
}

// Alloc returns the base address of n zero-initialized bytes. The block
// is 8-byte aligned and never moves until freed.
func (h *Heap) Alloc(n int) (uintptr, error) {
	if n <= 0 {
		return 0, ErrBadSize
	}
	cls := classFor(n)
	if cls < 0 {
		return h.allocLarge(n)
	}

	if list := h.free[cls]; len(list) > 0 {
		addr := list[len(list)-1]
		h.free[cls] = list[:len(list)-1]
		// Reused block: scrub whatever the previous owner left behind.
		clear(span(addr, classSizes[cls]))
		return addr, nil
	}

	size := uintptr(classSizes[cls])
	if h.curEnd-h.cur < size {
		if err := h.grow(); err != nil {
			return 0, err
		}
	}
	addr := h.cur
	h.cur += size
	// Fresh mappings are already zero.
	return addr, nil
}

// Free returns the block at addr, allocated with size n, to the heap.
// Class blocks go back on their free list with contents intact;
// dedicated mappings are released to the system immediately.
func (h *Heap) Free(addr uintptr, n int) error {
	if b, ok := h.large[addr]; ok {
		delete(h.large, addr)
		h.stats.LargeMapped--
		h.stats.LargeBytes -= len(b)
		return unmapMem(b)
	}
	cls := classFor(n)
	if addr == 0 || cls < 0 {
		return ErrBadFree
	}
	h.free[cls] = append(h.free[cls], addr)
	return nil
}

// Stats returns a copy of the heap's counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// grow maps a fresh arena and makes it the active bump region. Whatever
// remains of the old arena is slotted into the free lists first so no
// usable bytes are stranded.
func (h *Heap) grow() error {
	h.releaseTail()

	b, err := mapAnon(arenaSize)
	if err != nil {
		return fmt.Errorf("%w: arena: %v", ErrNoSpace, err)
	}
	h.arenas = append(h.arenas, b)
	h.cur = uintptr(unsafe.Pointer(&b[0]))
	h.curEnd = h.cur + uintptr(len(b))
	h.stats.Grows++
	h.stats.ArenaBytes += len(b)
	return nil
}

// releaseTail breaks the unallocated tail of the active arena into
// class-sized chunks and pushes them onto the free lists. A sub-minimum
// remainder is dropped.
func (h *Heap) releaseTail() {
	for {
		cls := largestClassWithin(h.curEnd - h.cur)
		if cls < 0 {
			break
		}
		h.free[cls] = append(h.free[cls], h.cur)
		h.cur += uintptr(classSizes[cls])
	}
	h.cur = h.curEnd
}

// allocLarge serves a request above the largest size class with a
// dedicated mapping, rounded up to whole pages.
func (h *Heap) allocLarge(n int) (uintptr, error) {
	size := (n + pageSize - 1) &^ (pageSize - 1)
	b, err := mapAnon(size)
	if err != nil {
		return 0, fmt.Errorf("%w: %d bytes: %v", ErrNoSpace, size, err)
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	h.large[addr] = b
	h.stats.LargeMapped++
	h.stats.LargeBytes += len(b)
	return addr, nil
}

// span views n bytes of raw memory at addr as a byte slice.
func span(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}
