package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/arenakit/internal/buf"
)

// Descriptor is the decoded arena descriptor stored at region offset 0.
type Descriptor struct {
	Capacity uint32 // Region length minus DescriptorSize
	Head     int32  // First free block header, NoBlock when the list is empty
}

// ParseDescriptor validates and decodes the descriptor at the start of b.
// The recorded capacity must match the region length exactly.
func ParseDescriptor(b []byte) (Descriptor, error) {
	if len(b) < DescriptorSize {
		return Descriptor{}, fmt.Errorf("descriptor: %w", ErrTruncated)
	}
	if !bytes.Equal(b[DescriptorSignatureOffset:DescriptorSignatureSize], DescriptorSignature) {
		return Descriptor{}, fmt.Errorf("descriptor: %w", ErrSignatureMismatch)
	}
	d := Descriptor{
		Capacity: buf.U32LE(b[DescriptorCapacityOffset:]),
		Head:     buf.I32LE(b[DescriptorHeadOffset:]),
	}
	if int(d.Capacity)+DescriptorSize != len(b) {
		return Descriptor{}, fmt.Errorf(
			"descriptor: capacity %d does not match region length %d",
			d.Capacity, len(b),
		)
	}
	return d, nil
}

// PutDescriptor writes d at the start of b.
func PutDescriptor(b []byte, d Descriptor) {
	copy(b[DescriptorSignatureOffset:], DescriptorSignature)
	PutU32(b, DescriptorCapacityOffset, d.Capacity)
	PutI32(b, DescriptorHeadOffset, d.Head)
	PutU32(b, DescriptorReservedOffset, 0)
}
