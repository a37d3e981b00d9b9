package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadVertexRoundTrips(t *testing.T) {
	r := record.New(7, true)
	require.NoError(t, r.AddEdgeTo(9))
	r.Payload = []byte("AC")

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteVertex(r, record.FormatEdgesToFrom))

	rd := NewReader(&buf, true)
	got, err := rd.Next()
	require.NoError(t, err)

	plvr, ok := got.(*record.PLVR)
	require.True(t, ok)
	assert.Equal(t, r.ID, plvr.ID)
	assert.Equal(t, r.EdgesTo, plvr.EdgesTo)
	assert.Equal(t, r.Payload, plvr.Payload)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteReadEdgeRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteEdge(EdgeRecord{From: 3, To: 5}))

	rd := NewReader(&buf, true)
	got, err := rd.Next()
	require.NoError(t, err)

	edge, ok := got.(EdgeRecord)
	require.True(t, ok)
	assert.Equal(t, core.VertexID(3), edge.From)
	assert.Equal(t, core.VertexID(5), edge.To)
}

func TestMixedStreamReadsBothTags(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	r := record.New(1, true)
	require.NoError(t, r.AddEdgeTo(2))
	require.NoError(t, w.WriteVertex(r, record.FormatEdgesToOnly))
	require.NoError(t, w.WriteEdge(EdgeRecord{From: 1, To: 2}))

	rd := NewReader(&buf, true)
	first, err := rd.Next()
	require.NoError(t, err)
	_, isVertex := first.(*record.PLVR)
	assert.True(t, isVertex)

	second, err := rd.Next()
	require.NoError(t, err)
	_, isEdge := second.(EdgeRecord)
	assert.True(t, isEdge)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNextRejectsUnknownTag(t *testing.T) {
	var buf bytes.Buffer
	var lenBuf [4]byte
	payload := []byte{99, 0, 0}
	lenBuf[3] = byte(len(payload))
	buf.Write(lenBuf[:])
	buf.Write(payload)

	rd := NewReader(&buf, true)
	_, err := rd.Next()
	assert.ErrorIs(t, err, ErrFraming)
}

func TestNextRejectsTruncatedEdgeRecord(t *testing.T) {
	var buf bytes.Buffer
	var lenBuf [4]byte
	payload := []byte{tagEdge, 0, 0, 0} // short of the required 9 bytes
	lenBuf[3] = byte(len(payload))
	buf.Write(lenBuf[:])
	buf.Write(payload)

	rd := NewReader(&buf, true)
	_, err := rd.Next()
	assert.ErrorIs(t, err, ErrFraming)
}

func TestNextRecoversTruncatedVertexRecord(t *testing.T) {
	r := record.New(7, true)
	require.NoError(t, r.AddEdgeTo(9))
	full := r.ToBytes(record.FormatEdgesToFrom)
	truncated := full[:len(full)-2]

	var buf bytes.Buffer
	var lenBuf [4]byte
	binaryPutLen(lenBuf[:], len(truncated))
	buf.Write(lenBuf[:])
	buf.Write(truncated)

	rd := NewReader(&buf, true)
	got, err := rd.Next()
	require.NoError(t, err)
	plvr, ok := got.(*record.PLVR)
	require.True(t, ok)
	assert.Equal(t, r.ID, plvr.ID)
}

func binaryPutLen(b []byte, n int) {
	b[0] = byte(n >> 24)
	b[1] = byte(n >> 16)
	b[2] = byte(n >> 8)
	b[3] = byte(n)
}
