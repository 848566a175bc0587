package gc

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"unsafe"

	"github.com/joshuapare/marksweep/gc/heapmap"
	"github.com/joshuapare/marksweep/internal/machine"
	"github.com/joshuapare/marksweep/internal/roots"
	"github.com/joshuapare/marksweep/internal/scan"
	"github.com/joshuapare/marksweep/internal/sysheap"
)

// reclaimPattern is written over swept blocks when overwrite-on-reclaim
// is enabled.
const reclaimPattern = 0xAB

var (
	errHeapLimit = errors.New("gc: allocation would exceed heap cap")
)

type phase uint8

const (
	phaseIdle phase = iota
	phaseMarking
	phaseSweeping
)

// Collector owns all process-wide collector state: the backing heap, the
// allocation table, the cached root bounds and the debug configuration.
// It is created once, lazily, on the first public call.
type Collector struct {
	heap   *sysheap.Heap
	allocs *heapmap.Map

	// stack is the last known bounds of the calling stack; refreshed
	// when SP falls outside it (the runtime moves stacks). data is
	// discovered once and fixed for the process lifetime.
	stack roots.Region
	data  roots.Region

	maxHeap   int
	overwrite bool
	phase     phase

	log *slog.Logger

	cycles      int
	markedLast  int
	sweptBlocks int
	sweptBytes  int64
}

// newCollector discovers the root regions and returns a ready collector.
func newCollector() (*Collector, error) {
	c := &Collector{
		heap:   sysheap.New(),
		allocs: heapmap.New(),
		log:    discardLogger(),
	}

	sp := machine.StackPointer()
	stack, err := roots.StackRegion(sp)
	if err != nil {
		return nil, err
	}
	c.stack = stack

	data, err := roots.DataRegion()
	if err != nil {
		return nil, err
	}
	c.data = data

	if os.Getenv("MARKSWEEP_VERBOSE") != "" {
		c.SetVerboseLogging(true)
	}
	if v := os.Getenv("MARKSWEEP_MAX_HEAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.maxHeap = n
		}
	}

	c.log.Debug("root set established",
		"stack_start", hex(c.stack.Start), "stack_size", c.stack.Size,
		"data_start", hex(c.data.Start), "data_size", c.data.Size)
	return c, nil
}

// Alloc attempts an allocation, collecting and retrying exactly once on
// failure. Returns nil when memory cannot be had even after the retry.
func (c *Collector) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	addr, err := c.tryAlloc(size)
	if err != nil {
		c.log.Debug("allocation failed, collecting", "size", size, "err", err)
		c.Collect()
		addr, err = c.tryAlloc(size)
		if err != nil {
			c.log.Debug("allocation failed after collection", "size", size, "err", err)
			return nil
		}
	}
	return unsafe.Pointer(addr)
}

// tryAlloc is the tracker's allocation path: enforce the cap before
// touching the underlying heap, then record the new block.
func (c *Collector) tryAlloc(size int) (uintptr, error) {
	if c.maxHeap > 0 && c.allocs.Total()+size > c.maxHeap {
		return 0, errHeapLimit
	}
	addr, err := c.heap.Alloc(size)
	if err != nil {
		return 0, err
	}
	c.allocs.Insert(addr, size)
	return addr, nil
}

// Collect runs one full mark-and-sweep cycle: snapshot the registers,
// scan them, the in-use stack and the static-data segment into a fresh
// mark set, then sweep everything the mark set misses and install it as
// the new allocation table.
func (c *Collector) Collect() {
	c.phase = phaseMarking
	c.log.Debug("collection start", "live_blocks", c.allocs.Len(), "live_bytes", c.allocs.Total())

	marked := heapmap.New()
	sc := scan.New(c.allocs, marked)

	// Registers first: the snapshot stores flush any reference the
	// compiler kept purely in a register, and the buffer itself is a
	// root region for the rest of this cycle.
	var regs [machine.NumRegisters]uintptr
	machine.CaptureRegisters(&regs)
	sc.Region(uintptr(unsafe.Pointer(&regs)), unsafe.Sizeof(regs))
	c.log.Debug("marked registers", "marked", marked.Len())

	// Only the portion between the current SP and the stack top is in
	// use; dead frames below SP are not roots.
	sp := machine.StackPointer()
	if !c.stack.Contains(sp) {
		stack, err := roots.StackRegion(sp)
		if err != nil {
			fatalRootSet(err)
		}
		c.stack = stack
	}
	sc.Region(sp, c.stack.End()-sp)
	c.log.Debug("marked stack", "in_use", c.stack.End()-sp, "marked", marked.Len())

	sc.Region(c.data.Start, c.data.Size)
	c.log.Debug("marked data segment", "marked", marked.Len())
	runtime.KeepAlive(&regs)

	c.phase = phaseSweeping
	blocks, bytes := c.sweep(marked)
	c.allocs = marked

	c.cycles++
	c.markedLast = marked.Len()
	c.sweptBlocks += blocks
	c.sweptBytes += int64(bytes)
	c.phase = phaseIdle
	c.log.Debug("collection done", "swept_blocks", blocks, "swept_bytes", bytes,
		"live_blocks", c.allocs.Len(), "live_bytes", c.allocs.Total())
}

// sweep releases every tracked block absent from the mark set and reports
// how many blocks and bytes were reclaimed.
func (c *Collector) sweep(marked *heapmap.Map) (blocks, bytes int) {
	c.allocs.Range(func(base uintptr, size int) bool {
		if marked.Has(base) {
			return true
		}
		c.log.Debug("sweeping block", "base", hex(base), "size", size)
		if c.overwrite {
			b := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
			for i := range b {
				b[i] = reclaimPattern
			}
		}
		if err := c.heap.Free(base, size); err != nil {
			c.log.Error("sweep free failed", "base", hex(base), "err", err)
		}
		blocks++
		bytes += size
		return true
	})
	return blocks, bytes
}

// SetMaxHeap caps total tracked bytes; 0 removes the cap.
func (c *Collector) SetMaxHeap(n int) {
	if n < 0 {
		n = 0
	}
	c.maxHeap = n
}

// SetOverwriteReclaimedBlocks toggles the sentinel overwrite of swept
// blocks.
func (c *Collector) SetOverwriteReclaimedBlocks(on bool) {
	c.overwrite = on
}

// SetVerboseLogging toggles mark/sweep tracing.
func (c *Collector) SetVerboseLogging(on bool) {
	if on {
		c.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		c.log = discardLogger()
	}
}

// Stats returns a snapshot of the collector's counters.
func (c *Collector) Stats() Stats {
	return Stats{
		LiveBlocks:  c.allocs.Len(),
		LiveBytes:   c.allocs.Total(),
		Cycles:      c.cycles,
		MarkedLast:  c.markedLast,
		SweptBlocks: c.sweptBlocks,
		SweptBytes:  c.sweptBytes,
	}
}

// discardLogger drops all output; tracing is opt-in.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// hex renders an address for log output.
func hex(v uintptr) string {
	return "0x" + strconv.FormatUint(uint64(v), 16)
}
