package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Free releases the block referenced by ref and coalesces it with any
// address-adjacent free neighbours.
//
// ref must pass Validate; otherwise Free returns ErrInvalidPointer and leaves
// the arena untouched. This covers foreign or mid-block references as well as
// double frees.
func (a *Arena) Free(ref Ref) error {
	a.stats.FreeCalls++

	if !a.Validate(ref) {
		a.stats.FreeRejected++
		a.log.Warn("free rejected", "ref", ref)
		return fmt.Errorf("%w: ref 0x%X", ErrInvalidPointer, ref)
	}

	off := headerOf(ref)
	a.stats.BytesFreed += int64(a.magnitude(off))
	a.setState(off, format.StateFree)

	left, right := a.insertionPoint(off)
	a.linkBetween(left, off, right)
	a.coalesce(left, off, right)
	return nil
}

// insertionPoint returns the free-list neighbours the block at off belongs
// between to keep the list address-ordered. left is format.NoBlock when off
// precedes the head (or the list is empty); right is format.NoBlock when off
// lies past the tail.
func (a *Arena) insertionPoint(off int) (left, right int32) {
	left = format.NoBlock
	right = a.head()
	for right != format.NoBlock && int(right) < off {
		left = right
		right = a.next(int(right))
	}
	return left, right
}

// coalesce merges the freshly linked block at off with its list neighbours
// whenever they are contiguous with it. A block can absorb both neighbours at
// once, leaving one block spanning all three ranges at left's offset.
func (a *Arena) coalesce(left int32, off int, right int32) {
	cur := off
	if left != format.NoBlock && a.endOf(int(left)) == off {
		a.stats.CoalesceBackward++
		a.merge(int(left), off)
		cur = int(left)
	}
	if right != format.NoBlock && a.endOf(cur) == int(right) {
		a.stats.CoalesceForward++
		a.merge(cur, int(right))
	}

	if a.trace {
		a.log.Debug("free",
			"block", off,
			"topology", topology(left, right),
			"merged_into", cur,
			"magnitude", a.magnitude(cur))
	}
}

// merge absorbs the free block right into its list predecessor left. left
// keeps its header and grows by right's payload plus one header; right's
// header is voided.
func (a *Arena) merge(left, right int) {
	n := a.next(right)
	a.setMagnitude(left, a.magnitude(left)+a.magnitude(right)+format.HeaderSize)
	a.setNext(left, n)
	if n != format.NoBlock {
		a.setPrev(int(n), int32(left))
	}
	format.VoidHeader(a.buf, right)
}

// topology names the insertion case for traces.
func topology(left, right int32) string {
	switch {
	case left == format.NoBlock && right == format.NoBlock:
		return "empty"
	case left == format.NoBlock:
		return "head"
	case right == format.NoBlock:
		return "tail"
	default:
		return "interior"
	}
}
