package arena

import (
	"github.com/joshuapare/arenakit/internal/buf"
	"github.com/joshuapare/arenakit/internal/format"
)

// Offset conversions. Every other operation is written in terms of these.

// headerOf returns the header offset for a payload reference.
func headerOf(ref Ref) int { return int(ref) - format.HeaderSize }

// payloadOf returns the payload reference for a header offset.
func payloadOf(off int) Ref { return Ref(off + format.HeaderSize) }

// endOf returns the offset one past the payload of the block at off, which is
// where the physically following header starts.
func (a *Arena) endOf(off int) int { return off + format.HeaderSize + a.magnitude(off) }

// firstBlock is the offset of the lowest block header.
func firstBlock() int { return format.DescriptorSize }

// hasHeader reports whether a full header fits at off.
func (a *Arena) hasHeader(off int) bool {
	return off >= firstBlock() && buf.Has(a.buf, off, format.HeaderSize)
}

// ============================================================================
// Header field accessors
// ============================================================================

func (a *Arena) magnitude(off int) int {
	return int(format.ReadU32(a.buf, off+format.HeaderMagnitudeOffset))
}

func (a *Arena) setMagnitude(off, n int) {
	format.PutU32(a.buf, off+format.HeaderMagnitudeOffset, uint32(n))
}

func (a *Arena) state(off int) format.State {
	return format.ReadState(a.buf, off)
}

func (a *Arena) setState(off int, s format.State) {
	format.PutState(a.buf, off, s)
}

func (a *Arena) prev(off int) int32 {
	return format.ReadI32(a.buf, off+format.HeaderPrevOffset)
}

func (a *Arena) next(off int) int32 {
	return format.ReadI32(a.buf, off+format.HeaderNextOffset)
}

func (a *Arena) setPrev(off int, p int32) {
	format.PutI32(a.buf, off+format.HeaderPrevOffset, p)
}

func (a *Arena) setNext(off int, n int32) {
	format.PutI32(a.buf, off+format.HeaderNextOffset, n)
}

// ============================================================================
// Free-list link surgery
// ============================================================================

// linkBetween links the block at off between p and n, either of which may be
// format.NoBlock. A missing p makes off the new head.
func (a *Arena) linkBetween(p int32, off int, n int32) {
	a.setPrev(off, p)
	a.setNext(off, n)
	if p == format.NoBlock {
		a.setHead(int32(off))
	} else {
		a.setNext(int(p), int32(off))
	}
	if n != format.NoBlock {
		a.setPrev(int(n), int32(off))
	}
}

// unlink removes the block at off from the free list and clears its links.
func (a *Arena) unlink(off int) {
	p, n := a.prev(off), a.next(off)
	if p == format.NoBlock {
		a.setHead(n)
	} else {
		a.setNext(int(p), n)
	}
	if n != format.NoBlock {
		a.setPrev(int(n), p)
	}
	a.setPrev(off, format.NoBlock)
	a.setNext(off, format.NoBlock)
}

// replace puts the block at repl into the free-list position held by old.
func (a *Arena) replace(old, repl int) {
	a.linkBetween(a.prev(old), repl, a.next(old))
	a.setPrev(old, format.NoBlock)
	a.setNext(old, format.NoBlock)
}
