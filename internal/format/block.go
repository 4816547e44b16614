package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/arenakit/internal/buf"
)

// State is the allocation state recorded in a block header.
type State uint8

const (
	// StateVoid marks a header that was absorbed into its left neighbour.
	StateVoid State = iota
	// StateFree marks a block linked into the free list.
	StateFree
	// StateAllocated marks a block owned by a caller.
	StateAllocated
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateAllocated:
		return "allocated"
	default:
		return "void"
	}
}

// Header is a decoded block header.
type Header struct {
	Offset    int   // Region offset of the header
	State     State // Free or allocated
	Magnitude int   // Payload bytes, header excluded
	Prev      int32 // Previous free block, NoBlock if none (free blocks only)
	Next      int32 // Next free block, NoBlock if none (free blocks only)
}

// Payload returns the region offset of the first payload byte.
func (h Header) Payload() int { return h.Offset + HeaderSize }

// End returns the region offset one past the last payload byte, which is
// where the physically following header starts.
func (h Header) End() int { return h.Offset + HeaderSize + h.Magnitude }

// ReadState decodes the state signature at off. Unknown signatures decode as
// StateVoid.
func ReadState(b []byte, off int) State {
	sig, ok := buf.Slice(b, off+HeaderStateOffset, SignatureSize)
	if !ok {
		return StateVoid
	}
	switch {
	case bytes.Equal(sig, FreeSignature):
		return StateFree
	case bytes.Equal(sig, AllocatedSignature):
		return StateAllocated
	default:
		return StateVoid
	}
}

// PutState writes the signature for s at off.
func PutState(b []byte, off int, s State) {
	switch s {
	case StateFree:
		copy(b[off+HeaderStateOffset:], FreeSignature)
	case StateAllocated:
		copy(b[off+HeaderStateOffset:], AllocatedSignature)
	default:
		PutU16(b, off+HeaderStateOffset, 0)
	}
}

// ReadHeader decodes the block header located at off within b. The header and
// the payload it declares must both fit in b.
func ReadHeader(b []byte, off int) (Header, error) {
	if !buf.Has(b, off, HeaderSize) {
		return Header{}, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	state := ReadState(b, off)
	if state == StateVoid {
		return Header{}, fmt.Errorf("block at %d: %w", off, ErrVoidBlock)
	}
	h := Header{
		Offset:    off,
		State:     state,
		Magnitude: int(buf.U32LE(b[off+HeaderMagnitudeOffset:])),
		Prev:      buf.I32LE(b[off+HeaderPrevOffset:]),
		Next:      buf.I32LE(b[off+HeaderNextOffset:]),
	}
	if _, err := buf.CheckSpan(len(b), off+HeaderSize, h.Magnitude); err != nil {
		return Header{}, fmt.Errorf("block at %d: payload %d: %w", off, h.Magnitude, ErrTruncated)
	}
	return h, nil
}

// PutHeader encodes h at h.Offset. Links are written as given; callers clear
// them for allocated blocks.
func PutHeader(b []byte, h Header) {
	PutState(b, h.Offset, h.State)
	PutU16(b, h.Offset+HeaderReservedOffset, 0)
	PutU32(b, h.Offset+HeaderMagnitudeOffset, uint32(h.Magnitude))
	PutI32(b, h.Offset+HeaderPrevOffset, h.Prev)
	PutI32(b, h.Offset+HeaderNextOffset, h.Next)
}

// VoidHeader clears the header at off so it can no longer be decoded as a block.
func VoidHeader(b []byte, off int) {
	PutHeader(b, Header{Offset: off, State: StateVoid, Prev: NoBlock, Next: NoBlock})
}
