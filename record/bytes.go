package record

import (
	"encoding/binary"
	"errors"

	"github.com/katalvlaran/brujin/core"
)

// recordTag is the leading byte identifying a vertex record in a framed
// stream (spec §4.2, §6). Edge records (tag 2) are a wire-package concern;
// PLVR only ever (de)serializes tag 1.
const recordTag byte = 1

// ErrUnexpectedTag indicates the leading byte of the buffer handed to
// FromBytes was not the vertex-record tag (1). This is distinct from
// truncation: a wrong tag means "not a PLVR", not "an incomplete PLVR".
var ErrUnexpectedTag = errors.New("record: unexpected leading tag byte")

// Format selects which fields ToBytes writes.
type Format int

const (
	// FormatEdgesToOnly omits edgesFrom from the wire form (nFrom is
	// still written, as 0).
	FormatEdgesToOnly Format = iota
	// FormatEdgesToFrom writes both edgesTo and edgesFrom.
	FormatEdgesToFrom
)

func flagsByte(f Flags) byte {
	var b byte
	if f.IsBranch {
		b |= flagBranch
	}
	if f.IsSource {
		b |= flagSource
	}
	if f.IsSink {
		b |= flagSink
	}
	return b
}

func flagsFromByte(b byte) Flags {
	return Flags{
		IsBranch: b&flagBranch != 0,
		IsSource: b&flagSource != 0,
		IsSink:   b&flagSink != 0,
	}
}

// ToBytes serializes r into the fixed wire format (spec §4.2). With
// FormatEdgesToOnly, edgesFrom is omitted from the payload (nFrom written
// as 0) but everything else — including Payload — is still written.
func (r *PLVR) ToBytes(format Format) []byte {
	includeFrom := format == FormatEdgesToFrom

	nTo := len(r.EdgesTo)
	nFrom := 0
	if includeFrom {
		nFrom = len(r.EdgesFrom)
	}

	size := 1 + 1 + 4 + 2 + 4*nTo + 2 + 4*nFrom + 2 + len(r.Payload)
	buf := make([]byte, size)

	off := 0
	buf[off] = recordTag
	off++
	buf[off] = flagsByte(r.Flags)
	off++
	binary.BigEndian.PutUint32(buf[off:], uint32(int32(r.ID)))
	off += 4

	binary.BigEndian.PutUint16(buf[off:], uint16(int16(nTo)))
	off += 2
	for _, v := range r.EdgesTo {
		binary.BigEndian.PutUint32(buf[off:], uint32(int32(v)))
		off += 4
	}

	binary.BigEndian.PutUint16(buf[off:], uint16(int16(nFrom)))
	off += 2
	if includeFrom {
		for _, v := range r.EdgesFrom {
			binary.BigEndian.PutUint32(buf[off:], uint32(int32(v)))
			off += 4
		}
	}

	binary.BigEndian.PutUint16(buf[off:], uint16(int16(len(r.Payload))))
	off += 2
	copy(buf[off:], r.Payload)

	return buf
}

// FromBytes parses a PLVR from its wire form. Truncated input is
// reconstructed as much as possible and returned without error, per spec
// §4.2/§7: a reader recovers what it can rather than failing outright. Only
// a leading byte other than the vertex-record tag is an error — that is a
// different record type, not a truncated one.
//
// 16-bit length fields are assembled via encoding/binary (unsigned byte
// arithmetic, then an explicit int16 cast), never a signed shift — so
// values with a high bit set in either byte round-trip correctly.
func FromBytes(data []byte, allowMultiples bool) (*PLVR, error) {
	if len(data) == 0 || data[0] != recordTag {
		return nil, ErrUnexpectedTag
	}

	r := New(0, allowMultiples)

	off := 1
	if off >= len(data) {
		return r, nil
	}
	r.Flags = flagsFromByte(data[off])
	off++

	if off+4 > len(data) {
		return r, nil
	}
	r.ID = core.VertexID(int32(binary.BigEndian.Uint32(data[off:])))
	off += 4

	if off+2 > len(data) {
		return r, nil
	}
	nTo := int(int16(binary.BigEndian.Uint16(data[off:])))
	off += 2

	for i := 0; i < nTo; i++ {
		if off+4 > len(data) {
			return r, nil
		}
		r.EdgesTo = append(r.EdgesTo, core.VertexID(int32(binary.BigEndian.Uint32(data[off:]))))
		off += 4
	}

	if off+2 > len(data) {
		return r, nil
	}
	nFrom := int(int16(binary.BigEndian.Uint16(data[off:])))
	off += 2

	for i := 0; i < nFrom; i++ {
		if off+4 > len(data) {
			return r, nil
		}
		r.EdgesFrom = append(r.EdgesFrom, core.VertexID(int32(binary.BigEndian.Uint32(data[off:]))))
		off += 4
	}

	if off+2 > len(data) {
		return r, nil
	}
	payloadLen := int(int16(binary.BigEndian.Uint16(data[off:])))
	off += 2

	end := off + payloadLen
	if end > len(data) {
		end = len(data)
	}
	if end > off {
		r.Payload = append([]byte(nil), data[off:end]...)
	}

	return r, nil
}
