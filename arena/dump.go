package arena

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/arenakit/internal/format"
)

// FreeIter walks the free list in address order. It is lazy and single-use:
// once Next has returned io.EOF it keeps returning io.EOF. The arena must not
// be modified while an iterator is in use.
type FreeIter struct {
	a     *Arena
	cur   int32
	limit int
}

// FreeBlocks returns an iterator over free-block magnitudes, lowest address first.
func (a *Arena) FreeBlocks() *FreeIter {
	return &FreeIter{a: a, cur: a.head(), limit: len(a.buf)/format.HeaderSize + 1}
}

// Next returns the magnitude of the next free block, or io.EOF after the tail.
// A link that leaves the region, or a list longer than the region could hold,
// reports ErrCorrupt.
func (it *FreeIter) Next() (int, error) {
	if it.cur == format.NoBlock {
		return 0, io.EOF
	}
	off := int(it.cur)
	if !it.a.hasHeader(off) || it.limit == 0 {
		it.cur = format.NoBlock
		return 0, fmt.Errorf("%w: free list link %d", ErrCorrupt, off)
	}
	it.limit--
	it.cur = it.a.next(off)
	return it.a.magnitude(off), nil
}

// FreeSizes collects the free-block magnitudes in address order.
func (a *Arena) FreeSizes() []int {
	var sizes []int
	it := a.FreeBlocks()
	for {
		n, err := it.Next()
		if err != nil {
			return sizes
		}
		sizes = append(sizes, n)
	}
}

// DumpFreeList writes the free list as "-> 55 -> 24 -> NULL".
func (a *Arena) DumpFreeList(w io.Writer) error {
	var sb strings.Builder
	for _, n := range a.FreeSizes() {
		fmt.Fprintf(&sb, "-> %d ", n)
	}
	sb.WriteString("-> NULL\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// BlockInfo describes one block found by walking the region.
type BlockInfo struct {
	Offset int  // Region offset of the header
	Ref    Ref  // Payload reference
	Size   int  // Payload magnitude
	Free   bool // True when the block is on the free list
}

// BlockIter walks every block in address order, free or allocated.
type BlockIter struct {
	a   *Arena
	cur int
}

// Blocks returns an iterator over the physical block sequence.
func (a *Arena) Blocks() *BlockIter {
	return &BlockIter{a: a, cur: firstBlock()}
}

// Next decodes the next block, or returns io.EOF once the region end is reached.
func (it *BlockIter) Next() (BlockInfo, error) {
	if it.cur >= len(it.a.buf) {
		return BlockInfo{}, io.EOF
	}
	h, err := format.ReadHeader(it.a.buf, it.cur)
	if err != nil {
		it.cur = len(it.a.buf)
		return BlockInfo{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	it.cur = h.End()
	return BlockInfo{
		Offset: h.Offset,
		Ref:    Ref(h.Payload()),
		Size:   h.Magnitude,
		Free:   h.State == format.StateFree,
	}, nil
}
