package record

import (
	"testing"

	"github.com/katalvlaran/brujin/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeToKeepsAscendingOrder(t *testing.T) {
	r := New(1, true)
	for _, v := range []core.VertexID{5, 1, 3} {
		require.NoError(t, r.AddEdgeTo(v))
	}
	assert.Equal(t, []core.VertexID{1, 3, 5}, r.EdgesTo)
}

func TestAddEdgeToNoMultiplesIsNoOp(t *testing.T) {
	r := New(1, false)
	require.NoError(t, r.AddEdgeTo(5))
	require.NoError(t, r.AddEdgeTo(5))
	assert.Equal(t, []core.VertexID{5}, r.EdgesTo)
}

func TestBranchFlagAndGroups(t *testing.T) {
	r := New(1, true)
	for _, v := range []core.VertexID{5, 5, 7} {
		require.NoError(t, r.AddEdgeTo(v))
	}

	assert.True(t, r.Flags.IsBranch)

	groups := r.EdgesToGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, Group{Value: 5, Count: 2}, groups[0])
	assert.Equal(t, Group{Value: 7, Count: 1}, groups[1])
}

func TestSourceSinkFlags(t *testing.T) {
	r := New(1, true)
	require.NoError(t, r.AddEdgeTo(2))
	assert.True(t, r.Flags.IsSource)
	assert.False(t, r.Flags.IsSink)

	require.NoError(t, r.AddEdgeFrom(0))
	assert.False(t, r.Flags.IsSource)
}

func TestRemoveEdgeToNonExistentIsNoOp(t *testing.T) {
	r := New(1, true)
	require.NoError(t, r.AddEdgeTo(2))
	assert.Zero(t, r.RemoveEdgeTo(99))
	assert.Equal(t, []core.VertexID{2}, r.EdgesTo)
}

func TestMergeRequiresMatchingID(t *testing.T) {
	a := New(1, true)
	b := New(2, true)
	assert.ErrorIs(t, a.Merge(b), ErrIDMismatch)
}

func TestMergeUnionsEdges(t *testing.T) {
	a := New(1, true)
	require.NoError(t, a.AddEdgeTo(2))
	b := New(1, true)
	require.NoError(t, b.AddEdgeTo(3))
	require.NoError(t, b.AddEdgeFrom(0))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []core.VertexID{2, 3}, a.EdgesTo)
	assert.Equal(t, []core.VertexID{0}, a.EdgesFrom)
}

func TestRoundTripEdgesToFrom(t *testing.T) {
	r := New(42, true)
	require.NoError(t, r.AddEdgeTo(1))
	require.NoError(t, r.AddEdgeTo(2))
	require.NoError(t, r.AddEdgeFrom(7))
	r.Payload = []byte{0xAA, 0xBB}

	data := r.ToBytes(FormatEdgesToFrom)
	got, err := FromBytes(data, true)
	require.NoError(t, err)

	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.EdgesTo, got.EdgesTo)
	assert.Equal(t, r.EdgesFrom, got.EdgesFrom)
	assert.Equal(t, r.Payload, got.Payload)
	assert.Equal(t, r.Flags, got.Flags)
}

func TestRoundTripEdgesToOnlyOmitsEdgesFrom(t *testing.T) {
	r := New(42, true)
	require.NoError(t, r.AddEdgeTo(1))
	require.NoError(t, r.AddEdgeFrom(7))

	data := r.ToBytes(FormatEdgesToOnly)
	got, err := FromBytes(data, true)
	require.NoError(t, err)

	assert.Equal(t, r.EdgesTo, got.EdgesTo)
	assert.Empty(t, got.EdgesFrom)
}

func TestFromBytesRejectsWrongTag(t *testing.T) {
	_, err := FromBytes([]byte{2, 0, 0}, true)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
}

func TestFromBytesTruncatedReconstructsPartial(t *testing.T) {
	r := New(42, true)
	require.NoError(t, r.AddEdgeTo(1))
	require.NoError(t, r.AddEdgeTo(2))
	data := r.ToBytes(FormatEdgesToFrom)

	got, err := FromBytes(data[:len(data)-3], true)
	require.NoError(t, err)
	assert.Equal(t, core.VertexID(42), got.ID)
	// The truncated tail (edgesFrom/payload length) is simply absent.
	assert.Empty(t, got.EdgesFrom)
}

func TestCompressChainProducesFusedRecord(t *testing.T) {
	a := New(1, true)
	require.NoError(t, a.AddEdgeTo(2))
	a.Payload = []byte("AB")

	b := New(2, true)
	require.NoError(t, b.AddEdgeTo(3))
	b.Payload = []byte("C")

	merged, err := CompressChain(a, b, CompressChainOptions{MultiplesMustMatch: true})
	require.NoError(t, err)
	assert.Equal(t, core.VertexID(1), merged.ID)
	assert.Equal(t, []core.VertexID{3}, merged.EdgesTo)
	assert.Equal(t, []byte("ABC"), merged.Payload)
}

func TestCompressChainRejectsNonUniqueSuccessor(t *testing.T) {
	a := New(1, true)
	require.NoError(t, a.AddEdgeTo(2))
	require.NoError(t, a.AddEdgeTo(3))

	b := New(2, true)
	require.NoError(t, b.AddEdgeTo(4))

	_, err := CompressChain(a, b, CompressChainOptions{MultiplesMustMatch: true})
	assert.ErrorIs(t, err, ErrNotUniqueSuccessor)
}

func TestCompressChainMultiplesMustMatch(t *testing.T) {
	a := New(1, true)
	require.NoError(t, a.AddEdgeTo(2))
	require.NoError(t, a.AddEdgeTo(2))

	b := New(2, true)
	require.NoError(t, b.AddEdgeTo(3))

	_, err := CompressChain(a, b, CompressChainOptions{MultiplesMustMatch: true})
	assert.ErrorIs(t, err, ErrMultiplicityMismatch)

	merged, err := CompressChain(a, b, CompressChainOptions{MultiplesMustMatch: false})
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{3}, merged.EdgesTo)
}

func TestThreeRecordChainCompressesInTwoRounds(t *testing.T) {
	a := New(1, true)
	require.NoError(t, a.AddEdgeTo(2))
	b := New(2, true)
	require.NoError(t, b.AddEdgeTo(3))
	c := New(3, true)
	require.NoError(t, c.AddEdgeTo(4))

	ab, err := CompressChain(a, b, CompressChainOptions{MultiplesMustMatch: true})
	require.NoError(t, err)
	require.Equal(t, core.VertexID(1), ab.ID)
	require.Equal(t, []core.VertexID{3}, ab.EdgesTo)

	abc, err := CompressChain(ab, c, CompressChainOptions{MultiplesMustMatch: true})
	require.NoError(t, err)
	assert.Equal(t, core.VertexID(1), abc.ID)
	assert.Equal(t, []core.VertexID{4}, abc.EdgesTo)
}
