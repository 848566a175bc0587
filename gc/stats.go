package gc

// Stats reports collector activity counters.
type Stats struct {
	LiveBlocks  int   // blocks currently tracked
	LiveBytes   int   // bytes currently tracked
	Cycles      int   // collection cycles completed
	MarkedLast  int   // blocks marked reachable in the most recent cycle
	SweptBlocks int   // blocks reclaimed across all cycles
	SweptBytes  int64 // bytes reclaimed across all cycles
}
