package arena

import "github.com/joshuapare/arenakit/internal/format"

// Validate reports whether ref refers to a live allocation in this arena. It
// never mutates the arena.
//
// A ref is valid when all of the following hold:
//   - it lies in the payload area [DescriptorSize, DescriptorSize+capacity)
//   - it is exactly HeaderSize past a block header reached by walking the
//     blocks from the first one (mid-block refs are rejected)
//   - that header is tagged allocated
//   - the block is absent from the free list
//
// The block walk and the free-list scan are both O(n).
func (a *Arena) Validate(ref Ref) bool {
	r := int(ref)
	if r < format.DescriptorSize || r >= format.DescriptorSize+a.capacity() {
		return false
	}
	off := headerOf(ref)
	if !a.hasHeader(off) || a.state(off) != format.StateAllocated {
		return false
	}
	return a.isBlockStart(off) && !a.inFreeList(off)
}

// isBlockStart reports whether a block header begins at off.
func (a *Arena) isBlockStart(off int) bool {
	for cur := firstBlock(); a.hasHeader(cur); cur = a.endOf(cur) {
		if cur >= off {
			return cur == off
		}
	}
	return false
}

// inFreeList reports whether the block at off is linked into the free list.
// The scan is bounded by the number of headers that fit in the region so a
// damaged link cannot loop forever.
func (a *Arena) inFreeList(off int) bool {
	limit := len(a.buf)/format.HeaderSize + 1
	for cur := a.head(); cur != format.NoBlock && limit > 0; cur = a.next(int(cur)) {
		if int(cur) == off {
			return true
		}
		if !a.hasHeader(int(cur)) {
			return false
		}
		limit--
	}
	return false
}
