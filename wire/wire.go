// Package wire implements the length-prefixed, tag-discriminated record
// stream described in spec §6: a sequence of frames, each a 4-byte
// big-endian length followed by that many payload bytes whose first byte is
// a type tag (1 = vertex record, 2 = edge record). Framing is layered over
// encoding/binary and io.ReadFull, the pattern used throughout the pack's
// stream codecs (e.g. codahale-thyrse's aestream header/body split).
package wire

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
)

// ErrFraming indicates a malformed frame: an unrecognized tag, or a tag-2
// (edge record) payload that was truncated. Tag-1 (vertex record) payloads
// are never truncation errors -- record.FromBytes recovers what it can.
var ErrFraming = errors.New("wire: framing error")

const (
	tagVertex byte = 1
	tagEdge   byte = 2

	edgeRecordLen = 1 + 4 + 4 // tag + from + to
)

// EdgeRecord is the minimal wire representation of a single directed edge,
// recognized alongside vertex records in a mixed input stream (spec §4.2).
type EdgeRecord struct {
	From core.VertexID
	To   core.VertexID
}

// Writer frames vertex and edge records onto an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a frame writer.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteVertex frames r's wire form (record.PLVR.ToBytes) as one frame.
func (w *Writer) WriteVertex(r *record.PLVR, format record.Format) error {
	return w.writeFrame(r.ToBytes(format))
}

// WriteEdge frames a 9-byte tag-2 edge record.
func (w *Writer) WriteEdge(e EdgeRecord) error {
	buf := make([]byte, edgeRecordLen)
	buf[0] = tagEdge
	binary.BigEndian.PutUint32(buf[1:], uint32(int32(e.From)))
	binary.BigEndian.PutUint32(buf[5:], uint32(int32(e.To)))
	return w.writeFrame(buf)
}

func (w *Writer) writeFrame(payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.w.Write(payload)
	return err
}

// Reader reads framed records from an underlying stream, one call to Next
// per frame.
type Reader struct {
	r              io.Reader
	allowMultiples bool
}

// NewReader wraps r as a frame reader. allowMultiples governs the PLVR
// multi-edge policy used to reconstruct vertex records.
func NewReader(r io.Reader, allowMultiples bool) *Reader {
	return &Reader{r: r, allowMultiples: allowMultiples}
}

// Next reads and decodes the next frame, returning either a *record.PLVR or
// an EdgeRecord depending on the frame's tag. It returns io.EOF when the
// stream is exhausted at a frame boundary, and ErrFraming on an unknown tag
// or a truncated edge record.
func (r *Reader) Next() (any, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r.r, lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	payload := make([]byte, n)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrFraming
		}
		return nil, err
	}

	if len(payload) == 0 {
		return nil, ErrFraming
	}

	switch payload[0] {
	case tagVertex:
		return record.FromBytes(payload, r.allowMultiples)
	case tagEdge:
		if len(payload) != edgeRecordLen {
			return nil, ErrFraming
		}
		return EdgeRecord{
			From: core.VertexID(int32(binary.BigEndian.Uint32(payload[1:]))),
			To:   core.VertexID(int32(binary.BigEndian.Uint32(payload[5:]))),
		}, nil
	default:
		return nil, ErrFraming
	}
}
