package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// Test_Scenario_FixedWorkload mirrors the driver workload: 15-byte
// allocations in a 118-byte arena until the remaining space is at most 15
// bytes, then everything is freed in reverse order.
func Test_Scenario_FixedWorkload(t *testing.T) {
	const (
		regionSize = 118
		blockSize  = 15
	)
	a, _ := newTestArena(t, regionSize, nil)
	initial := a.FreeSizes()
	require.Equal(t, []int{86}, initial)

	var refs []Ref
	attempts := 0
	for i := 0; regionSize-i*blockSize > blockSize; i++ {
		attempts++
		ref, payload, err := a.Alloc(blockSize)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)
			continue
		}
		clear(payload)
		refs = append(refs, ref)
		requireInvariants(t, a)
	}

	bound := (regionSize - format.DescriptorSize) / (blockSize + format.HeaderSize)
	require.Equal(t, 7, attempts)
	require.Len(t, refs, 3)
	require.LessOrEqual(t, len(refs), bound)
	require.Equal(t, []Ref{32, 63, 94}, refs)
	require.Empty(t, a.FreeSizes())

	for i := len(refs) - 1; i >= 0; i-- {
		require.NoError(t, a.Free(refs[i]))
		requireInvariants(t, a)
	}
	require.Equal(t, initial, a.FreeSizes())

	st := a.Stats()
	require.Equal(t, 7, st.AllocCalls)
	require.Equal(t, 4, st.AllocFailures)
	require.Equal(t, 3, st.FreeCalls)
	require.Equal(t, 2, st.SplitCount)
}

// Test_Scenario_MiddleFirst frees B, then A, then C out of three adjacent
// blocks A, B, C and expects a single block spanning all three.
func Test_Scenario_MiddleFirst(t *testing.T) {
	a, _, refs := equalBlocks(t, 3, 32)
	initial := a.Capacity() - format.HeaderSize
	blockA, blockB, blockC := refs[0], refs[1], refs[2]

	// B is an island: both neighbours allocated.
	require.NoError(t, a.Free(blockB))
	require.Equal(t, []int{32}, a.FreeSizes())
	require.True(t, a.Validate(blockA))
	require.True(t, a.Validate(blockC))

	// A merges with B only.
	require.NoError(t, a.Free(blockA))
	require.Equal(t, []int{80}, a.FreeSizes())
	require.True(t, a.Validate(blockC))

	// C merges with the A-B block.
	require.NoError(t, a.Free(blockC))
	require.Equal(t, []int{initial}, a.FreeSizes())
	require.Equal(t, int32(headerOf(blockA)), a.head())
	requireInvariants(t, a)
}

// Test_Scenario_RoundTrip allocates and immediately frees a block in
// isolation; free capacity and list shape must be restored.
func Test_Scenario_RoundTrip(t *testing.T) {
	for _, size := range []int{1, 15, 100, 400, 464} {
		a, _, refs := equalBlocks(t, 1, 480)
		require.NoError(t, a.Free(refs[0]))
		before := a.FreeSizes()

		ref, _, err := a.Alloc(size)
		require.NoError(t, err, "size %d", size)
		require.NoError(t, a.Free(ref))
		require.Equal(t, before, a.FreeSizes(), "size %d", size)
		requireInvariants(t, a)
	}
}

// Test_Scenario_RoundTripBetweenAllocations repeats the round trip while
// other blocks stay allocated on both sides of the free space.
func Test_Scenario_RoundTripBetweenAllocations(t *testing.T) {
	a, _, refs := equalBlocks(t, 5, 64)
	freeAll(t, a, refs[1], refs[2])
	before := a.FreeSizes()
	require.Equal(t, []int{144}, before)

	ref, _, err := a.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, refs[1], ref)
	require.Equal(t, []int{88}, a.FreeSizes())

	require.NoError(t, a.Free(ref))
	require.Equal(t, before, a.FreeSizes())
	requireInvariants(t, a)
}
