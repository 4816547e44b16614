package arena

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

func TestValidate(t *testing.T) {
	a, region, refs := equalBlocks(t, 4, 32)
	require.NoError(t, a.Free(refs[1]))

	tests := []struct {
		name string
		ref  Ref
		want bool
	}{
		{name: "first block", ref: refs[0], want: true},
		{name: "last block", ref: refs[3], want: true},
		{name: "freed block", ref: refs[1], want: false},
		{name: "zero", ref: 0, want: false},
		{name: "inside descriptor", ref: format.DescriptorSize - 1, want: false},
		{name: "first header", ref: format.DescriptorSize, want: false},
		{name: "one before first payload", ref: refs[0] - 1, want: false},
		{name: "mid block", ref: refs[0] + 8, want: false},
		{name: "one past payload start", ref: refs[2] + 1, want: false},
		{name: "region end", ref: Ref(len(region)), want: false},
		{name: "far beyond region", ref: 1 << 31, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, a.Validate(tt.ref))
		})
	}
}

// TestValidate_ForgedHeader writes an allocated signature into a payload so a
// mid-block ref looks like it follows a header. The block walk rejects it.
func TestValidate_ForgedHeader(t *testing.T) {
	a, _ := newTestArena(t, 256, nil)
	ref, payload, err := a.Alloc(64)
	require.NoError(t, err)

	copy(payload[8:], format.AllocatedSignature)
	forged := ref + 8 + format.HeaderSize
	require.Equal(t, format.StateAllocated, a.state(headerOf(forged)))
	require.False(t, a.Validate(forged))
	require.ErrorIs(t, a.Free(forged), ErrInvalidPointer)
	require.True(t, a.Validate(ref))
}

func TestValidate_DoesNotMutate(t *testing.T) {
	a, region, refs := equalBlocks(t, 3, 16)
	require.NoError(t, a.Free(refs[0]))
	before := bytes.Clone(region)

	for r := Ref(0); r < Ref(len(region)+8); r++ {
		a.Validate(r)
	}
	require.Equal(t, before, region)
}
