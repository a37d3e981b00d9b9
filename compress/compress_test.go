package compress

import (
	"sort"
	"testing"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same coin outcome, letting tests force a
// specific head/tail pairing deterministically.
type fixedRand struct{ next int }

func (f *fixedRand) Intn(int) int { return f.next }

func sortedIDs(rs []*record.PLVR) []core.VertexID {
	ids := make([]core.VertexID, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func mustAddTo(t *testing.T, r *record.PLVR, to core.VertexID) {
	t.Helper()
	require.NoError(t, r.AddEdgeTo(to))
}

func TestPairingKeyRejectsBranchRecord(t *testing.T) {
	r := record.New(1, true)
	mustAddTo(t, r, 2)
	mustAddTo(t, r, 3)
	require.True(t, r.Flags.IsBranch)

	_, err := PairingKey(&fixedRand{0}, r)
	assert.ErrorIs(t, err, ErrBranchRecord)
}

func TestPairingKeySinkAlwaysKeysOnOwnID(t *testing.T) {
	r := record.New(5, true)
	key, err := PairingKey(&fixedRand{1}, r)
	require.NoError(t, err)
	assert.Equal(t, core.VertexID(5), key)
}

func TestRunRejectsBranchRecords(t *testing.T) {
	r := record.New(1, true)
	mustAddTo(t, r, 2)
	mustAddTo(t, r, 3)

	_, _, err := Run([]*record.PLVR{r}, &fixedRand{0}, record.CompressChainOptions{MultiplesMustMatch: true})
	assert.ErrorIs(t, err, ErrBranchRecord)
}

func TestRunMergesAgreeingPair(t *testing.T) {
	u := record.New(1, true)
	mustAddTo(t, u, 2)
	w := record.New(2, true)
	mustAddTo(t, w, 3)

	// Force u to key on "tail" (w.ID=2, call order: u then w) and w to
	// key on "head" (w.ID=2).
	seq := []int{1, 0}
	call := 0
	rng := fixedSeq(func() int {
		v := seq[call]
		call++
		return v
	})
	result, merges, err := Run([]*record.PLVR{u, w}, rng, record.CompressChainOptions{MultiplesMustMatch: true})
	require.NoError(t, err)
	assert.Equal(t, 1, merges)
	require.Len(t, result, 1)
	assert.Equal(t, core.VertexID(1), result[0].ID)
	assert.Equal(t, []core.VertexID{3}, result[0].EdgesTo)
}

func TestRunIsSilentWhenAllRecordsChooseHead(t *testing.T) {
	u := record.New(1, true)
	mustAddTo(t, u, 2)
	w := record.New(2, true)
	mustAddTo(t, w, 3)

	rng := &fixedRand{0} // every record keys on its own id
	result, merges, err := Run([]*record.PLVR{u, w}, rng, record.CompressChainOptions{MultiplesMustMatch: true})
	require.NoError(t, err)
	assert.Zero(t, merges)
	assert.ElementsMatch(t, []core.VertexID{1, 2}, sortedIDs(result))
}

func TestRunToFixpointCollapsesTwoHopChainThenGoesSilent(t *testing.T) {
	u := record.New(1, true)
	mustAddTo(t, u, 2)
	w := record.New(2, true)
	mustAddTo(t, w, 3)

	// Round 1 (call order u,w): u keys tail=2, w keys head=2 -> merge.
	// Round 2: the single survivor can't pair with anything, so whatever
	// it draws the round is silent regardless of the coin value.
	seq := []int{1, 0, 0}
	call := 0
	rng := Rand(fixedSeq(func() int {
		v := seq[call%len(seq)]
		call++
		return v
	}))

	res, err := RunToFixpoint([]*record.PLVR{u, w}, rng, record.CompressChainOptions{MultiplesMustMatch: true}, 1)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, core.VertexID(1), res.Records[0].ID)
	assert.Equal(t, []core.VertexID{3}, res.Records[0].EdgesTo)
	assert.Equal(t, 2, res.Rounds)
}

type fixedSeq func() int

func (f fixedSeq) Intn(int) int { return f() }

func TestRunShardedDoesNotGrowRecordSetOrEmitBranches(t *testing.T) {
	u := record.New(1, true)
	mustAddTo(t, u, 2)
	w := record.New(2, true)
	mustAddTo(t, w, 3)
	x := record.New(10, true)
	mustAddTo(t, x, 20)
	y := record.New(20, true)
	mustAddTo(t, y, 30)

	result, _, err := RunSharded(
		[]*record.PLVR{u, w, x, y},
		2,
		func(worker int) int64 { return int64(worker + 1) },
		record.CompressChainOptions{MultiplesMustMatch: true},
	)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result), 4)
	for _, r := range result {
		assert.False(t, r.Flags.IsBranch)
	}
}

func TestRunShardedRejectsBranchRecords(t *testing.T) {
	r := record.New(1, true)
	mustAddTo(t, r, 2)
	mustAddTo(t, r, 3)

	_, _, err := RunSharded([]*record.PLVR{r}, 2, nil, record.CompressChainOptions{MultiplesMustMatch: true})
	assert.ErrorIs(t, err, ErrBranchRecord)
}
