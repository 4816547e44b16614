package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestArena initializes an arena over a fresh region of n bytes.
func newTestArena(t testing.TB, n int, opts *Options) (*Arena, []byte) {
	t.Helper()
	region := make([]byte, n)
	a, err := Init(region, opts)
	require.NoError(t, err)
	return a, region
}

// equalBlocks builds an arena sized for exactly n allocations of size bytes,
// allocates all of them and returns their refs in address order. The free
// list is empty afterwards.
func equalBlocks(t testing.TB, n, size int) (*Arena, []byte, []Ref) {
	t.Helper()
	a, region := newTestArena(t, format.DescriptorSize+n*(format.HeaderSize+size), nil)
	refs := make([]Ref, n)
	for i := range n {
		ref, payload, err := a.Alloc(size)
		require.NoError(t, err)
		require.Len(t, payload, size)
		require.Equal(t, blockRef(i, size), ref, "block %d", i)
		refs[i] = ref
	}
	require.Empty(t, a.FreeSizes())
	return a, region, refs
}

// blockRef is the ref of the i-th block laid out by equalBlocks.
func blockRef(i, size int) Ref {
	return Ref(format.DescriptorSize + i*(format.HeaderSize+size) + format.HeaderSize)
}

// requireInvariants checks every structural invariant plus conservation of
// the original first block.
func requireInvariants(t testing.TB, a *Arena) {
	t.Helper()
	require.NoError(t, a.Check())

	s := a.Stats()
	first := a.Capacity() - format.HeaderSize
	require.Equal(t, first, s.FreeBytes+s.AllocatedBytes+(s.Blocks-1)*format.HeaderSize,
		"payload plus inner headers must equal the initial free block")
}

// freeAll releases refs in the given order.
func freeAll(t testing.TB, a *Arena, refs ...Ref) {
	t.Helper()
	for _, ref := range refs {
		require.NoError(t, a.Free(ref), "free 0x%X", ref)
	}
}
