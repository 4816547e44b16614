package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/arenakit/internal/format"
)

// Ref is the region offset of a block's first payload byte.
type Ref = uint32

// Arena is a handle over a region holding an arena descriptor and its blocks.
// The handle does not own the region; the caller keeps it alive and must not
// write outside the payloads it was handed.
type Arena struct {
	buf []byte

	splitThreshold int

	log   *slog.Logger
	trace bool // log has debug enabled; checked before building trace records

	// Statistics for testing and instrumentation
	stats allocatorStats
}

// Init carves an arena out of region: the descriptor at offset 0 and a single
// free block consuming every remaining byte.
//
// The region must be longer than format.DescriptorSize + format.HeaderSize.
// Any previous content is overwritten.
func Init(region []byte, opts *Options) (*Arena, error) {
	if len(region) < format.MinRegionSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrArenaTooSmall, len(region), format.MinRegionSize)
	}
	if len(region) > format.MaxRegionSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d",
			ErrArenaTooLarge, len(region), format.MaxRegionSize)
	}
	if opts == nil {
		opts = &DefaultOptions
	}

	a := newArena(region, opts)
	first := format.DescriptorSize
	format.PutDescriptor(region, format.Descriptor{
		Capacity: uint32(len(region) - format.DescriptorSize),
		Head:     int32(first),
	})
	format.PutHeader(region, format.Header{
		Offset:    first,
		State:     format.StateFree,
		Magnitude: len(region) - format.DescriptorSize - format.HeaderSize,
		Prev:      format.NoBlock,
		Next:      format.NoBlock,
	})
	if opts.ZeroFill {
		clear(region[first+format.HeaderSize:])
	}

	if a.trace {
		a.log.Debug("arena initialized",
			"capacity", a.capacity(),
			"first_block", first,
			"first_free", a.magnitude(first))
	}
	return a, nil
}

// Open attaches to a region previously initialized by Init, for example a
// file-backed mapping, and verifies every structural invariant before
// returning the handle.
func Open(region []byte, opts *Options) (*Arena, error) {
	if _, err := format.ParseDescriptor(region); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}
	if opts == nil {
		opts = &DefaultOptions
	}
	a := newArena(region, opts)
	if err := a.Check(); err != nil {
		return nil, err
	}
	return a, nil
}

func newArena(region []byte, opts *Options) *Arena {
	log := opts.logger()
	return &Arena{
		buf:            region,
		splitThreshold: opts.splitThreshold(),
		log:            log,
		trace:          log.Enabled(context.Background(), slog.LevelDebug),
	}
}

// Capacity returns the bytes managed by the arena, descriptor excluded.
func (a *Arena) Capacity() int {
	return a.capacity()
}

// SplitThreshold returns the remainder size at or below which Alloc hands out
// a whole block instead of splitting it.
func (a *Arena) SplitThreshold() int {
	return a.splitThreshold
}

func (a *Arena) capacity() int {
	return int(format.ReadU32(a.buf, format.DescriptorCapacityOffset))
}

func (a *Arena) head() int32 {
	return format.ReadI32(a.buf, format.DescriptorHeadOffset)
}

func (a *Arena) setHead(off int32) {
	format.PutI32(a.buf, format.DescriptorHeadOffset, off)
}
