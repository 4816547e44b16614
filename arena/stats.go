package arena

import (
	"fmt"
	"io"
)

// allocatorStats holds internal allocator statistics.
type allocatorStats struct {
	AllocCalls       int   // Total Alloc() calls
	AllocFailures    int   // Alloc() calls that returned an error
	FreeCalls        int   // Total Free() calls
	FreeRejected     int   // Free() calls rejected by Validate
	BytesAllocated   int64 // Payload bytes handed out
	BytesFreed       int64 // Payload bytes returned
	SplitCount       int   // Number of block splits
	CoalesceForward  int   // Merges with the right neighbour
	CoalesceBackward int   // Merges with the left neighbour
}

// Stats is a snapshot of allocator counters and current occupancy.
type Stats struct {
	AllocCalls       int
	AllocFailures    int
	FreeCalls        int
	FreeRejected     int
	BytesAllocated   int64
	BytesFreed       int64
	SplitCount       int
	CoalesceForward  int
	CoalesceBackward int

	Capacity        int // Bytes managed, descriptor excluded
	Blocks          int // Blocks of either state
	FreeBlocks      int // Blocks on the free list
	FreeBytes       int // Sum of free magnitudes
	LargestFree     int // Largest free magnitude
	AllocatedBlocks int // Blocks owned by callers
	AllocatedBytes  int // Sum of allocated magnitudes
}

// Stats returns the call counters together with a fresh walk of the blocks.
func (a *Arena) Stats() Stats {
	s := Stats{
		AllocCalls:       a.stats.AllocCalls,
		AllocFailures:    a.stats.AllocFailures,
		FreeCalls:        a.stats.FreeCalls,
		FreeRejected:     a.stats.FreeRejected,
		BytesAllocated:   a.stats.BytesAllocated,
		BytesFreed:       a.stats.BytesFreed,
		SplitCount:       a.stats.SplitCount,
		CoalesceForward:  a.stats.CoalesceForward,
		CoalesceBackward: a.stats.CoalesceBackward,
		Capacity:         a.capacity(),
	}
	it := a.Blocks()
	for {
		b, err := it.Next()
		if err != nil {
			break
		}
		s.Blocks++
		if b.Free {
			s.FreeBlocks++
			s.FreeBytes += b.Size
			s.LargestFree = max(s.LargestFree, b.Size)
		} else {
			s.AllocatedBlocks++
			s.AllocatedBytes += b.Size
		}
	}
	return s
}

// freeCount returns the number of free-list entries.
func (a *Arena) freeCount() int {
	return len(a.FreeSizes())
}

// WriteStats writes a human-readable statistics summary to w.
func (a *Arena) WriteStats(w io.Writer) {
	s := a.Stats()
	fmt.Fprintf(w, "=== Arena Stats ===\n")
	fmt.Fprintf(w, "Capacity:    %d bytes in %d blocks\n", s.Capacity, s.Blocks)
	fmt.Fprintf(w, "Allocated:   %d blocks, %d bytes\n", s.AllocatedBlocks, s.AllocatedBytes)
	fmt.Fprintf(w, "Free:        %d blocks, %d bytes (largest %d)\n", s.FreeBlocks, s.FreeBytes, s.LargestFree)
	fmt.Fprintf(w, "Alloc calls: %d (%d failed)\n", s.AllocCalls, s.AllocFailures)
	fmt.Fprintf(w, "Free calls:  %d (%d rejected)\n", s.FreeCalls, s.FreeRejected)
	fmt.Fprintf(w, "Splits:      %d\n", s.SplitCount)
	fmt.Fprintf(w, "Coalesce:    %d forward, %d backward\n", s.CoalesceForward, s.CoalesceBackward)
}
