package arena

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/arenakit/internal/format"
)

// Check verifies the structural invariants of the arena and returns an error
// wrapping ErrCorrupt that describes the first violation found:
//
//  1. blocks partition the region exactly: sum(magnitude) + blocks*HeaderSize == capacity
//  2. every free block is on the free list exactly once, no allocated block is
//  3. the free list is strictly address-ordered with consistent back links
//  4. no two address-adjacent blocks are both free
func (a *Arena) Check() error {
	var (
		blocks, payload int
		free            []int
		prevFree        bool
	)
	it := a.Blocks()
	for {
		b, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if b.Free && prevFree {
			return fmt.Errorf("%w: adjacent free blocks ending at %d", ErrCorrupt, b.Offset)
		}
		if b.Free {
			free = append(free, b.Offset)
		}
		prevFree = b.Free
		blocks++
		payload += b.Size
	}
	if got := payload + blocks*format.HeaderSize; got != a.capacity() {
		return fmt.Errorf("%w: blocks cover %d bytes, capacity %d", ErrCorrupt, got, a.capacity())
	}

	// Free list must visit exactly the free blocks found above, in order.
	prev := format.NoBlock
	i := 0
	for cur := a.head(); cur != format.NoBlock; cur = a.next(int(cur)) {
		if i >= len(free) {
			return fmt.Errorf("%w: free list longer than %d free blocks", ErrCorrupt, len(free))
		}
		if int(cur) != free[i] {
			return fmt.Errorf("%w: free list entry %d is %d, want %d", ErrCorrupt, i, cur, free[i])
		}
		if p := a.prev(int(cur)); p != prev {
			return fmt.Errorf("%w: block %d prev link %d, want %d", ErrCorrupt, cur, p, prev)
		}
		prev = cur
		i++
	}
	if i != len(free) {
		return fmt.Errorf("%w: free list has %d entries, %d free blocks", ErrCorrupt, i, len(free))
	}
	return nil
}
