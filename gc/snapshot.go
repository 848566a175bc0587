package gc

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a point-in-time view of the collector for offline
// inspection: the tracked block table, the root-region bounds and the
// activity counters. Purely diagnostic; taking one has no effect on
// reachability.
type Snapshot struct {
	TakenAt time.Time       `cbor:"taken_at"`
	Stack   SnapshotRegion  `cbor:"stack"`
	Data    SnapshotRegion  `cbor:"data"`
	Blocks  []SnapshotBlock `cbor:"blocks"`
	Stats   Stats           `cbor:"stats"`
}

// SnapshotRegion records the bounds of one root region.
type SnapshotRegion struct {
	Start uint64 `cbor:"start"`
	Size  uint64 `cbor:"size"`
}

// SnapshotBlock records one tracked block.
type SnapshotBlock struct {
	Base uint64 `cbor:"base"`
	Size int64  `cbor:"size"`
}

// Canonical mode keeps snapshots byte-identical for identical heaps.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("gc: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// writeSnapshot marshals the current snapshot to w.
func (c *Collector) writeSnapshot(w io.Writer) error {
	data, err := cborEncMode.Marshal(c.snapshot())
	if err != nil {
		return fmt.Errorf("gc: encode snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// snapshot assembles a Snapshot with blocks sorted by base address.
func (c *Collector) snapshot() Snapshot {
	blocks := make([]SnapshotBlock, 0, c.allocs.Len())
	c.allocs.Range(func(base uintptr, size int) bool {
		blocks = append(blocks, SnapshotBlock{Base: uint64(base), Size: int64(size)})
		return true
	})
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Base < blocks[j].Base })

	return Snapshot{
		TakenAt: time.Now(),
		Stack:   SnapshotRegion{Start: uint64(c.stack.Start), Size: uint64(c.stack.Size)},
		Data:    SnapshotRegion{Start: uint64(c.data.Start), Size: uint64(c.data.Size)},
		Blocks:  blocks,
		Stats:   c.Stats(),
	}
}
