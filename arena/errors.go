package arena

import "errors"

var (
	// ErrArenaTooSmall indicates the region cannot hold the descriptor and one block header.
	ErrArenaTooSmall = errors.New("arena: region too small")

	// ErrArenaTooLarge indicates the region cannot be addressed with 32-bit offsets.
	ErrArenaTooLarge = errors.New("arena: region too large")

	// ErrInvalidSize indicates a non-positive allocation request.
	ErrInvalidSize = errors.New("arena: size must be positive")

	// ErrOutOfMemory indicates that no free block large enough was found.
	ErrOutOfMemory = errors.New("arena: no free block large enough")

	// ErrInvalidPointer indicates a reference outside the arena, off a block
	// boundary, or to a block that is already free.
	ErrInvalidPointer = errors.New("arena: invalid pointer")

	// ErrBadDescriptor indicates Open found no valid arena descriptor in the region.
	ErrBadDescriptor = errors.New("arena: bad descriptor")

	// ErrCorrupt indicates Check found a violated structural invariant.
	ErrCorrupt = errors.New("arena: corrupt")
)
