// Package heapmap implements the live-block table for the collector: a
// mapping from every managed block's base address to its size, plus a
// running total of tracked bytes.
//
// Two instances exist during a collection: the allocation table (every
// block handed out and not yet reclaimed) and the mark set (blocks proven
// reachable this cycle). At the end of a cycle the mark set replaces the
// allocation table wholesale; unmarked entries in the old table are the
// garbage.
//
// A block's identity is its base address only. No sub-range of a block has
// independent identity, so Lookup on an interior address always misses.
package heapmap

// Map tracks managed blocks by base address.
//
// Lookup is the pointer-validity oracle on the scanner's hottest path, so
// it must stay O(1). Insertion order is irrelevant.
type Map struct {
	blocks map[uintptr]int
	total  int
}

// New returns an empty block table.
func New() *Map {
	return &Map{blocks: make(map[uintptr]int)}
}

// Insert records a block at base with the given size in bytes. Inserting a
// base that is already present replaces its size.
func (m *Map) Insert(base uintptr, size int) {
	if old, ok := m.blocks[base]; ok {
		m.total -= old
	}
	m.blocks[base] = size
	m.total += size
}

// Lookup returns the size of the block whose base address is exactly addr.
func (m *Map) Lookup(addr uintptr) (int, bool) {
	size, ok := m.blocks[addr]
	return size, ok
}

// Has reports whether addr is a tracked base address.
func (m *Map) Has(addr uintptr) bool {
	_, ok := m.blocks[addr]
	return ok
}

// Len returns the number of tracked blocks.
func (m *Map) Len() int {
	return len(m.blocks)
}

// Total returns the sum of all tracked block sizes in bytes.
func (m *Map) Total() int {
	return m.total
}

// Range calls fn for every tracked block until fn returns false.
// Iteration order is unspecified.
func (m *Map) Range(fn func(base uintptr, size int) bool) {
	for base, size := range m.blocks {
		if !fn(base, size) {
			return
		}
	}
}
