// Package format houses the in-region binary layout of an arena: the arena
// descriptor at offset zero and the block header that precedes every payload.
// The goal is to keep encoding and decoding focused and allocation-free so the
// allocator can express every operation as offset arithmetic over the region.
package format

import "math"

var (
	// DescriptorSignature is the four-byte signature at the start of every
	// initialized arena region.
	// Layout (little-endian):
	//   0x00  'a' 'r' 'n' 'a'
	DescriptorSignature = []byte{'a', 'r', 'n', 'a'}

	// FreeSignature tags a block header whose payload is on the free list.
	FreeSignature = []byte{'b', 'f'}

	// AllocatedSignature tags a block header whose payload is owned by a caller.
	AllocatedSignature = []byte{'b', 'a'}
)

// Arena descriptor field offsets.
//
//	Offset  Size  Field
//	0x00    4     'a' 'r' 'n' 'a'
//	0x04    4     Capacity: region length minus DescriptorSize
//	0x08    4     Free-list head (region offset of a header, NoBlock if empty)
//	0x0C    4     Reserved, zero
const (
	DescriptorSignatureOffset = 0x00
	DescriptorSignatureSize   = 4
	DescriptorCapacityOffset  = 0x04
	DescriptorHeadOffset      = 0x08
	DescriptorReservedOffset  = 0x0C

	// DescriptorSize is the footprint of the arena descriptor.
	DescriptorSize = 0x10
)

// Block header field offsets.
//
//	Offset  Size  Field
//	0x00    2     State signature ("bf" free, "ba" allocated, zero when void)
//	0x02    2     Reserved, zero
//	0x04    4     Magnitude: payload bytes, header excluded
//	0x08    4     Previous free block (NoBlock if none), free blocks only
//	0x0C    4     Next free block (NoBlock if none), free blocks only
//	0x10    ...   Payload
const (
	HeaderStateOffset     = 0x00
	HeaderReservedOffset  = 0x02
	HeaderMagnitudeOffset = 0x04
	HeaderPrevOffset      = 0x08
	HeaderNextOffset      = 0x0C

	// HeaderSize is the number of bytes between a block header and its payload.
	HeaderSize = 0x10

	// SignatureSize is the length of a block state signature.
	SignatureSize = 2
)

const (
	// NoBlock marks an empty free-list head or a missing neighbour link.
	NoBlock int32 = -1

	// MinRegionSize is the smallest region that can host the descriptor, one
	// header and at least one payload byte.
	MinRegionSize = DescriptorSize + HeaderSize + 1

	// MaxRegionSize is the largest region addressable with int32 links.
	MaxRegionSize = math.MaxInt32
)
