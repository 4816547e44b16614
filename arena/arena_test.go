package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

func TestInit(t *testing.T) {
	a, region := newTestArena(t, 118, nil)

	require.Equal(t, []byte("arna"), region[:4])
	require.Equal(t, 102, a.Capacity())
	require.Equal(t, DefaultSplitThreshold, a.SplitThreshold())
	require.Equal(t, []int{86}, a.FreeSizes())
	requireInvariants(t, a)

	h, err := format.ReadHeader(region, format.DescriptorSize)
	require.NoError(t, err)
	require.Equal(t, format.StateFree, h.State)
	require.Equal(t, format.NoBlock, h.Prev)
	require.Equal(t, format.NoBlock, h.Next)
}

func TestInit_TooSmall(t *testing.T) {
	for _, n := range []int{0, 1, format.DescriptorSize, format.DescriptorSize + format.HeaderSize} {
		_, err := Init(make([]byte, n), nil)
		require.ErrorIs(t, err, ErrArenaTooSmall, "len %d", n)
	}

	a, _ := newTestArena(t, format.MinRegionSize, nil)
	require.Equal(t, []int{1}, a.FreeSizes())
}

func TestInit_ZeroFill(t *testing.T) {
	region := make([]byte, 128)
	for i := range region {
		region[i] = '0'
	}
	_, err := Init(region, &Options{ZeroFill: true})
	require.NoError(t, err)
	for i := format.DescriptorSize + format.HeaderSize; i < len(region); i++ {
		require.Zero(t, region[i], "payload byte %d", i)
	}

	region = make([]byte, 128)
	region[len(region)-1] = 0x7f
	_, err = Init(region, nil)
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), region[len(region)-1], "payload untouched without ZeroFill")
}

func TestInit_NegativeSplitThreshold(t *testing.T) {
	a, _ := newTestArena(t, 64, &Options{SplitThreshold: -5})
	require.Equal(t, 0, a.SplitThreshold())
}

func TestOpen_RoundTrip(t *testing.T) {
	a, region := newTestArena(t, 512, nil)
	refA, _, err := a.Alloc(40)
	require.NoError(t, err)
	refB, payloadB, err := a.Alloc(24)
	require.NoError(t, err)
	copy(payloadB, "persisted")
	require.NoError(t, a.Free(refA))

	reopened, err := Open(region, nil)
	require.NoError(t, err)
	require.Equal(t, a.FreeSizes(), reopened.FreeSizes())
	require.True(t, reopened.Validate(refB))
	require.False(t, reopened.Validate(refA))
	require.Equal(t, "persisted", string(region[refB:refB+9]))

	require.NoError(t, reopened.Free(refB))
	require.Equal(t, []int{512 - format.DescriptorSize - format.HeaderSize}, reopened.FreeSizes())
}

func TestOpen_BadDescriptor(t *testing.T) {
	_, err := Open(make([]byte, 256), nil)
	require.ErrorIs(t, err, ErrBadDescriptor)
	require.ErrorIs(t, err, format.ErrSignatureMismatch)

	_, region := newTestArena(t, 256, nil)
	_, err = Open(region[:200], nil)
	require.ErrorIs(t, err, ErrBadDescriptor, "capacity must match region length")
}

func TestOpen_Corrupt(t *testing.T) {
	_, region := newTestArena(t, 256, nil)
	format.PutI32(region, format.DescriptorHeadOffset, format.NoBlock)

	_, err := Open(region, nil)
	require.True(t, errors.Is(err, ErrCorrupt), "got %v", err)
}
