// Package arena provides a fixed-arena, explicit free-list allocator over a
// caller-supplied byte region.
//
// # Overview
//
// The allocator manages exactly one contiguous region for its lifetime. All of
// its bookkeeping lives inside that region: an arena descriptor at offset 0 and
// a block header in front of every payload, free or allocated. Free blocks are
// threaded into an address-ordered, doubly-linked free list whose links are
// region offsets stored in the headers themselves.
//
// # Operations
//
//   - Init(region, opts): write the descriptor and one free block spanning the rest
//   - Open(region, opts): attach to a region that already holds an arena
//   - Alloc(size): first-fit search with optional split
//   - Validate(ref): bounds, block-boundary and liveness check
//   - Free(ref): address-ordered reinsertion with coalescing
//   - FreeBlocks(), Blocks(), Check(), Stats(): diagnostics
//
// # Usage Example
//
//	region := make([]byte, 4096)
//	a, err := arena.Init(region, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, payload, err := a.Alloc(64)
//	if err != nil {
//	    return err
//	}
//	copy(payload, data)
//
//	// Later, release the block
//	err = a.Free(ref)
//
// # Region Layout
//
//	0x00  descriptor (16 bytes): "arna", capacity, free-list head, reserved
//	0x10  block header (16 bytes): state, magnitude, prev, next
//	0x20  payload of the first block
//	...   next block header, payload, ...
//
// Capacity is the region length minus the descriptor. Block magnitudes count
// payload bytes only, so sum(magnitude) + blocks*HeaderSize == capacity at all
// times.
//
// # References
//
// A Ref is the region offset of a payload's first byte. It is always exactly
// format.HeaderSize bytes past a block header. Refs stay valid for as long as
// the block stays allocated; they do not depend on where the region is mapped,
// so a file-backed arena can be reopened with Open and its refs reused.
//
// # Splitting
//
// A candidate block of magnitude m serving a request of size s leaves
// m - s - HeaderSize bytes for a new free block. The block is split only when
// that remainder exceeds Options.SplitThreshold; otherwise the whole block is
// handed out and keeps its magnitude.
//
// # Coalescing
//
// Free never leaves two address-adjacent blocks free. The freed block is linked
// at its address-ordered position and merged with its left neighbour and its
// right neighbour whenever they are contiguous with it. The surviving header is
// always the lowest one; absorbed headers are voided.
//
// # Complexity
//
// Alloc and Free scan the free list, and Validate walks the blocks and the free
// list, so every operation is O(n) in the number of blocks.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers must serialize all calls on a
// given arena, for example with one mutex guarding it.
//
// # Logging
//
// Set ARENA_LOG_ALLOC=1 to trace allocations, splits, merges and rejected
// frees to stderr, or pass a *slog.Logger through Options.Logger.
package arena
