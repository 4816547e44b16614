package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Alloc allocates a block with at least size payload bytes using first fit in
// free-list order.
//
// Returns the payload reference and a slice aliasing the payload. The slice is
// as long as the block's magnitude, which exceeds size when the remainder was
// too small to split off, and its capacity ends with the block. A failed Alloc leaves the arena untouched.
func (a *Arena) Alloc(size int) (Ref, []byte, error) {
	a.stats.AllocCalls++

	if size <= 0 {
		a.stats.AllocFailures++
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	off, ok := a.firstFit(size)
	if !ok {
		a.stats.AllocFailures++
		if a.trace {
			a.log.Debug("alloc failed", "size", size, "free_blocks", a.freeCount())
		}
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
	}

	// Split only when the remainder is worth a block of its own; otherwise the
	// whole candidate is handed out and keeps its magnitude.
	leftover := a.magnitude(off) - size - format.HeaderSize
	if leftover > a.splitThreshold {
		a.split(off, size, leftover)
	} else {
		a.unlink(off)
	}
	a.setState(off, format.StateAllocated)

	mag := a.magnitude(off)
	a.stats.BytesAllocated += int64(mag)
	if a.trace {
		a.log.Debug("alloc",
			"size", size,
			"block", off,
			"magnitude", mag,
			"split", leftover > a.splitThreshold)
	}

	// Capped at the block end so append reallocates instead of writing into
	// the next header.
	ref, end := payloadOf(off), a.endOf(off)
	return ref, a.buf[int(ref):end:end], nil
}

// firstFit walks the free list from its head and returns the first block whose
// magnitude is at least size. Reaching the tail without a fit reports false.
func (a *Arena) firstFit(size int) (int, bool) {
	for cur := a.head(); cur != format.NoBlock; cur = a.next(int(cur)) {
		if a.magnitude(int(cur)) >= size {
			return int(cur), true
		}
	}
	return 0, false
}

// split shrinks the free block at off to size and writes a free block with the
// given leftover magnitude right after it. The new block takes off's place in
// the free list; off leaves it.
func (a *Arena) split(off, size, leftover int) {
	a.stats.SplitCount++

	rest := off + format.HeaderSize + size
	format.PutHeader(a.buf, format.Header{
		Offset:    rest,
		State:     format.StateFree,
		Magnitude: leftover,
		Prev:      format.NoBlock,
		Next:      format.NoBlock,
	})
	a.replace(off, rest)
	a.setMagnitude(off, size)

	if a.trace {
		a.log.Debug("split", "block", off, "size", size, "remainder", rest, "remainder_size", leftover)
	}
}
